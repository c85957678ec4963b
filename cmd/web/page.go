package main

import (
	"net/http"
	"strconv"

	"github.com/techmart/storefront/internal/handlers"
	mw "github.com/techmart/storefront/internal/middleware"
	"github.com/techmart/storefront/internal/nav"
	"github.com/techmart/storefront/internal/seo"
)

// pageData assembles the layout envelope for a full page render.
func (a *app) pageData(r *http.Request, title, description string, state nav.State, productName string, view any) handlers.PageData {
	sess := mw.GetSession(r)
	c := mw.CartFromRequest(r)
	return handlers.PageData{
		Title:       title,
		Path:        r.URL.Path,
		Fragment:    state.Fragment(),
		Breadcrumbs: nav.Breadcrumbs(state, productName),
		Categories:  a.catalog.Categories(),
		SEO:         seo.ForPage(title, description, absoluteURL(r)),
		Analytics:   handlers.LoadAnalyticsFromEnv(),
		User:        mw.UserFromContext(r.Context()),
		CSRFToken:   sess.CSRFToken,
		CartCount:   c.ItemCount(),
		Flashes:     sess.TakeFlashes(),
		View:        view,
	}
}

func absoluteURL(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + r.Host + r.URL.Path
}

// navigator builds the per-request view router. The history sink records
// transitions by asking the browser to push the matching URL; requests that
// restore a history entry never reach it because the handlers pass
// record=false for them.
func (a *app) navigator(r *http.Request, w http.ResponseWriter) *nav.Navigator {
	return nav.New(a.catalog.Has, func() string { return mw.TokenFromRequest(r) }, hxHistory{w: w})
}

// recordHistory reports whether this request's transition should push a
// browser history entry: only htmx-driven transitions record explicitly, and
// never ones that originate from back/forward restoration.
func recordHistory(r *http.Request) bool {
	return mw.IsHTMX(r.Context()) && !mw.IsHistoryRestore(r.Context())
}

// hxHistory pushes recorded transitions into the browser history via htmx.
type hxHistory struct {
	w http.ResponseWriter
}

func (h hxHistory) Push(s nav.State) {
	h.w.Header().Set("HX-Push-Url", urlFor(s))
}

// urlFor maps a navigation state to its routable URL.
func urlFor(s nav.State) string {
	switch s.View {
	case nav.Product:
		return "/product/" + strconv.FormatInt(s.ProductID, 10)
	case nav.Profile:
		return "/profile"
	default:
		return "/"
	}
}
