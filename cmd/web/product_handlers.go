package main

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/techmart/storefront/internal/api"
	mw "github.com/techmart/storefront/internal/middleware"
	"github.com/techmart/storefront/internal/nav"
)

// ProductHandler renders the single-product view. The id must resolve in the
// loaded catalog; an unknown id is a silent no-op that lands on the gallery.
func (a *app) ProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		redirect(w, r, "/")
		return
	}

	// A direct page load may arrive before any gallery load has populated
	// the snapshot; establish the precondition here.
	if a.catalog.Len() == 0 {
		if products, err := a.api.Products(r.Context(), api.ProductQuery{}); err == nil {
			a.catalog.Replace(products)
		} else {
			log.Printf("product: load catalog: %v", err)
		}
	}

	n := a.navigator(r, w)
	if !n.ShowProduct(id, recordHistory(r)) {
		redirect(w, r, "/")
		return
	}

	p, _ := a.catalog.Find(id)
	view := buildProductView(p)
	if mw.IsHTMX(r.Context()) && !mw.IsHistoryRestore(r.Context()) {
		renderTemplate(w, r, "frag_product", view)
		return
	}
	vm := a.pageData(r, p.Name, p.Specs, nav.ProductState(id), p.Name, view)
	renderPage(w, r, "product", vm)
}
