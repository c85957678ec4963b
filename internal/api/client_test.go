package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductsDecodesAndConvertsPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/", r.URL.Path)
		assert.Equal(t, "laptop", r.URL.Query().Get("search"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 7, "name": "Laptop ", "price": 999.99, "stock": 3, "category": "Computers", "specs": "16GB RAM", "description": "Fast.", "image_url": "https://img.example/l.png"},
			{"id": 8, "name": "Sleeve", "price": 5.5, "stock": 10, "category": "Accessories"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	products, err := c.Products(context.Background(), ProductQuery{Search: "laptop"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, int64(99999), products[0].Price)
	assert.Equal(t, int64(550), products[1].Price)
}

func TestProductsCategoryFilter(t *testing.T) {
	var gotCategory string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCategory = r.URL.Query().Get("category")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Products(context.Background(), ProductQuery{Category: "Audio"})
	require.NoError(t, err)
	assert.Equal(t, "Audio", gotCategory)
}

func TestCreateOrderSendsExpandedIDsAndBearer(t *testing.T) {
	var got struct {
		ProductIDs []int64 `json:"product_ids"`
	}
	var auth, idem string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders/", r.URL.Path)
		auth = r.Header.Get("Authorization")
		idem = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).CreateOrder(context.Background(), "tok-1", []int64{4, 4, 9})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", auth)
	assert.NotEmpty(t, idem)
	assert.Equal(t, []int64{4, 4, 9}, got.ProductIDs)
}

func TestCancelOrderSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/orders/12/cancel", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail": "Order already shipped"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).CancelOrder(context.Background(), "tok-1", 12)
	require.Error(t, err)
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Order already shipped", apiErr.Detail)
}

func TestMeParsesProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		require.Equal(t, "Bearer tok-9", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{
			"email": "jo@example.com",
			"address": {"street": "1 Main St", "city": "Springfield", "zip_code": "55555"},
			"orders": [{"id": 3, "status": "Processing", "created_at": "2026-02-01T10:30:00Z", "total_price": 25.5}]
		}`))
	}))
	defer srv.Close()

	prof, err := NewClient(srv.URL).Me(context.Background(), "tok-9")
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", prof.Email)
	require.NotNil(t, prof.Address)
	assert.Equal(t, "Springfield", prof.Address.City)
	require.Len(t, prof.Orders, 1)
	assert.Equal(t, int64(2550), prof.Orders[0].TotalPrice)
	assert.Equal(t, time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC), prof.Orders[0].CreatedAt)
}

func TestLoginFormEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "jo@example.com", r.PostFormValue("username"))
		assert.Equal(t, "hunter2", r.PostFormValue("password"))
		_, _ = w.Write([]byte(`{"access_token": "tok-abc"}`))
	}))
	defer srv.Close()

	token, err := NewClient(srv.URL).Login(context.Background(), "jo@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestLoginFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "Incorrect email or password"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "jo@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestUpdateProductConvertsPriceBack(t *testing.T) {
	var got productInputPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/products/5", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).UpdateProduct(context.Background(), "tok-1", 5, ProductInput{
		Name:  "Webcam",
		Price: 8999,
		Stock: 4,
	})
	require.NoError(t, err)
	assert.InDelta(t, 89.99, got.Price, 1e-9)
}

func TestDeleteProduct(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).DeleteProduct(context.Background(), "tok-1", 9))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/products/9", path)
}

func TestErrorBodyWithoutDetailFallsBackToText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Register(context.Background(), "a@b.c", "a", "pw")
	require.Error(t, err)
	apiErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "upstream exploded", apiErr.Detail)
}
