package main

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/techmart/storefront/internal/api"
	"github.com/techmart/storefront/internal/cms"
	mw "github.com/techmart/storefront/internal/middleware"
	"github.com/techmart/storefront/internal/nav"
	"github.com/techmart/storefront/internal/search"
)

// GalleryHandler renders the product grid, optionally filtered by category.
// Each gallery load refreshes the in-memory catalog snapshot; a backend
// failure keeps the previous snapshot and is not surfaced.
func (a *app) GalleryHandler(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	products, err := a.api.Products(r.Context(), api.ProductQuery{Category: category})
	if err != nil {
		log.Printf("gallery: load products: %v", err)
		products = a.catalog.List()
	} else {
		a.catalog.Replace(products)
	}

	n := a.navigator(r, w)
	n.ShowGallery(recordHistory(r))

	canManage := mw.UserFromContext(r.Context()) != nil
	view := buildGalleryView(products, category, canManage)
	if mw.IsHTMX(r.Context()) && !mw.IsHistoryRestore(r.Context()) {
		renderTemplate(w, r, "frag_gallery", view)
		return
	}
	vm := a.pageData(r, view.Heading, "Browse the TechMart catalog.", nav.GalleryState(), "", view)
	renderPage(w, r, "gallery", vm)
}

// SearchSuggestHandler serves the search dropdown. Keystrokes funnel through
// a per-session debouncer: only a query that survives the quiet period issues
// a backend request, so rapid typing costs one call.
func (a *app) SearchSuggestHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("q")
	d := a.search.Get(mw.GetSession(r).ID)

	query, outcome := d.Submit(r.Context(), raw)
	switch outcome {
	case search.Suppressed:
		// too short: hide the dropdown immediately
		renderTemplate(w, r, "frag_suggest", SuggestView{})
		return
	case search.Superseded:
		w.WriteHeader(http.StatusNoContent)
		return
	}

	products, err := a.api.Products(r.Context(), api.ProductQuery{Search: query})
	if err != nil {
		log.Printf("search: %q: %v", query, err)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	renderTemplate(w, r, "frag_suggest", buildSuggestView(query, products))
}

// StaticPageHandler serves markdown-backed store pages (about, shipping, ...).
func (a *app) StaticPageHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page, err := a.pages.Page(slug)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	vm := a.pageData(r, page.Title, page.Summary, nav.GalleryState(), "", page)
	renderPage(w, r, "static_page", vm)
}
