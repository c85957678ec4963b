package main

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/techmart/storefront/internal/api"
	mw "github.com/techmart/storefront/internal/middleware"
	"github.com/techmart/storefront/internal/notify"
)

// productInputFromForm reads the writable product fields. The price arrives
// as a decimal string and is converted to minor units here, the only place a
// user-typed price crosses into the cents domain.
func productInputFromForm(r *http.Request) (api.ProductInput, error) {
	if err := r.ParseForm(); err != nil {
		return api.ProductInput{}, err
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("price")), 64)
	if err != nil {
		return api.ProductInput{}, err
	}
	stock, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("stock")))
	if err != nil {
		return api.ProductInput{}, err
	}
	return api.ProductInput{
		Name:        r.PostFormValue("name"),
		Category:    r.PostFormValue("category"),
		Specs:       r.PostFormValue("specs"),
		Description: r.PostFormValue("description"),
		Price:       int64(math.Round(price * 100)),
		Stock:       stock,
		ImageURL:    r.PostFormValue("image_url"),
	}, nil
}

// ProductCreateHandler adds a catalog entry on behalf of a logged-in user.
func (a *app) ProductCreateHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if sess.Token == "" {
		openLoginModal(w)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	in, err := productInputFromForm(r)
	if err != nil {
		http.Error(w, "invalid product form", http.StatusBadRequest)
		return
	}

	if _, err := a.api.CreateProduct(r.Context(), sess.Token, in); err != nil {
		if api.IsUnauthorized(err) {
			sessionExpired(w, r)
			return
		}
		sess.Flash(notify.Error, "Failed to create product.")
		refresh(w, r)
		return
	}

	a.reloadCatalog(r)
	sess.Flash(notify.Success, "Product created.")
	refresh(w, r)
}

// ProductUpdateHandler edits an existing catalog entry.
func (a *app) ProductUpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	sess := mw.GetSession(r)
	if sess.Token == "" {
		openLoginModal(w)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	in, err := productInputFromForm(r)
	if err != nil {
		http.Error(w, "invalid product form", http.StatusBadRequest)
		return
	}

	if err := a.api.UpdateProduct(r.Context(), sess.Token, id, in); err != nil {
		if api.IsUnauthorized(err) {
			sessionExpired(w, r)
			return
		}
		sess.Flash(notify.Error, "Failed to update product.")
		refresh(w, r)
		return
	}

	a.reloadCatalog(r)
	sess.Flash(notify.Success, "Product updated.")
	refresh(w, r)
}

// ProductDeleteHandler removes a catalog entry. Carts that already hold the
// product keep their snapshot of it.
func (a *app) ProductDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	sess := mw.GetSession(r)
	if sess.Token == "" {
		openLoginModal(w)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := a.api.DeleteProduct(r.Context(), sess.Token, id); err != nil {
		if api.IsUnauthorized(err) {
			sessionExpired(w, r)
			return
		}
		sess.Flash(notify.Error, "Failed to delete product.")
		refresh(w, r)
		return
	}

	a.reloadCatalog(r)
	sess.Flash(notify.Success, "Product deleted.")
	redirect(w, r, "/")
}

// reloadCatalog refreshes the in-memory snapshot after a write. A failure
// here only delays the refresh until the next gallery load.
func (a *app) reloadCatalog(r *http.Request) {
	products, err := a.api.Products(r.Context(), api.ProductQuery{})
	if err != nil {
		log.Printf("catalog reload: %v", err)
		return
	}
	a.catalog.Replace(products)
}
