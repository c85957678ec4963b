// Package api is the REST client for the storefront backend: product catalog,
// auth, and order endpoints.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout    = 8 * time.Second
	idempotencyHeader = "Idempotency-Key"
)

// Client issues calls against the backend API service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// ProductQuery filters the catalog listing. Zero value lists everything.
type ProductQuery struct {
	Search   string
	Category string
}

// Products fetches the catalog, optionally filtered by search text or
// category.
func (c *Client) Products(ctx context.Context, q ProductQuery) ([]Product, error) {
	endpoint, err := url.JoinPath(c.baseURL, "products/")
	if err != nil {
		return nil, err
	}
	values := url.Values{}
	if s := strings.TrimSpace(q.Search); s != "" {
		values.Set("search", s)
	}
	if cat := strings.TrimSpace(q.Category); cat != "" {
		values.Set("category", cat)
	}
	if len(values) > 0 {
		endpoint += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, newStatusError(resp.StatusCode, resp.Body)
	}

	var payload []productPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(payload))
	for _, p := range payload {
		out = append(out, p.toProduct())
	}
	return out, nil
}

// CreateOrder submits one order line per purchased unit. The request carries
// an idempotency key so a retried submit cannot double-create.
func (c *Client) CreateOrder(ctx context.Context, token string, productIDs []int64) error {
	body := map[string]any{"product_ids": productIDs}
	req, err := c.jsonRequest(ctx, http.MethodPost, body, "orders/")
	if err != nil {
		return err
	}
	req.Header.Set(idempotencyHeader, uuid.NewString())
	return c.doAuthed(req, token, nil)
}

// CancelOrder asks the backend to cancel an order. A failure surfaces the
// backend's detail text.
func (c *Client) CancelOrder(ctx context.Context, token string, orderID int64) error {
	req, err := c.jsonRequest(ctx, http.MethodPatch, nil, "orders", strconv.FormatInt(orderID, 10), "cancel")
	if err != nil {
		return err
	}
	return c.doAuthed(req, token, nil)
}

// Me fetches the authenticated user's profile and order history.
func (c *Client) Me(ctx context.Context, token string) (Profile, error) {
	req, err := c.jsonRequest(ctx, http.MethodGet, nil, "auth", "me")
	if err != nil {
		return Profile{}, err
	}
	var payload profilePayload
	if err := c.doAuthed(req, token, &payload); err != nil {
		return Profile{}, err
	}
	return payload.toProfile(), nil
}

// Login exchanges credentials for a bearer token. The endpoint expects a
// form-encoded body with username/password fields.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	endpoint, err := url.JoinPath(c.baseURL, "auth", "login")
	if err != nil {
		return "", err
	}
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", newStatusError(resp.StatusCode, resp.Body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	token := strings.TrimSpace(payload.AccessToken)
	if token == "" {
		return "", fmt.Errorf("api: login response carried no access token")
	}
	return token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, username, password string) error {
	body := map[string]string{"email": email, "username": username, "password": password}
	req, err := c.jsonRequest(ctx, http.MethodPost, body, "auth", "register")
	if err != nil {
		return err
	}
	return c.doAuthed(req, "", nil)
}

// SaveAddress stores the shipping address on the profile.
func (c *Client) SaveAddress(ctx context.Context, token string, addr Address) error {
	body := map[string]string{"street": addr.Street, "city": addr.City, "zip_code": addr.ZipCode}
	req, err := c.jsonRequest(ctx, http.MethodPost, body, "auth", "address")
	if err != nil {
		return err
	}
	return c.doAuthed(req, token, nil)
}

// CreateProduct adds a catalog entry (admin).
func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) (Product, error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, in.payload(), "products/")
	if err != nil {
		return Product{}, err
	}
	var payload productPayload
	if err := c.doAuthed(req, token, &payload); err != nil {
		return Product{}, err
	}
	return payload.toProduct(), nil
}

// UpdateProduct patches a catalog entry (admin).
func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, in ProductInput) error {
	req, err := c.jsonRequest(ctx, http.MethodPatch, in.payload(), "products", strconv.FormatInt(id, 10))
	if err != nil {
		return err
	}
	return c.doAuthed(req, token, nil)
}

// DeleteProduct removes a catalog entry (admin).
func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	req, err := c.jsonRequest(ctx, http.MethodDelete, nil, "products", strconv.FormatInt(id, 10))
	if err != nil {
		return err
	}
	return c.doAuthed(req, token, nil)
}

func (c *Client) jsonRequest(ctx context.Context, method string, body any, parts ...string) (*http.Request, error) {
	endpoint, err := url.JoinPath(c.baseURL, parts...)
	if err != nil {
		return nil, err
	}
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// doAuthed attaches the bearer token when present, executes the request, and
// decodes the response into out when non-nil.
func (c *Client) doAuthed(req *http.Request, token string, out any) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return newStatusError(resp.StatusCode, resp.Body)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
