package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/techmart/storefront/internal/api"
	"github.com/techmart/storefront/internal/cart"
	mw "github.com/techmart/storefront/internal/middleware"
	"github.com/techmart/storefront/internal/notify"
)

// CartFrag renders the cart panel.
func (a *app) CartFrag(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "frag_cart", buildCartView(mw.CartFromRequest(r)))
}

// CartAddHandler adds one unit of a product to the cart. The line item
// snapshots name/price/image from the loaded catalog at add time. Mutation,
// persistence, and render happen in strict sequence within this request.
func (a *app) CartAddHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.PostFormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	p, ok := a.catalog.Find(id)
	if !ok {
		// product not loaded: benign, render the cart unchanged
		a.renderCart(w, r, mw.CartFromRequest(r))
		return
	}

	c := mw.CartFromRequest(r)
	c.Add(cart.Snapshot{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageURL:  p.ImageURL,
	})
	mw.SaveCart(w, c)
	// the storefront opens the cart panel as feedback
	w.Header().Set("HX-Trigger", `{"cart:open": {}}`)
	a.renderCart(w, r, c)
}

// CartQuantityHandler applies a +/- delta to a line item. A resulting
// quantity of zero or below removes it; an unknown id is a no-op.
func (a *app) CartQuantityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	delta, err := strconv.Atoi(r.PostFormValue("delta"))
	if err != nil {
		http.Error(w, "invalid delta", http.StatusBadRequest)
		return
	}

	c := mw.CartFromRequest(r)
	c.ChangeQuantity(id, delta)
	mw.SaveCart(w, c)
	a.renderCart(w, r, c)
}

// CartRemoveHandler deletes a line item.
func (a *app) CartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	c := mw.CartFromRequest(r)
	c.Remove(id)
	mw.SaveCart(w, c)
	a.renderCart(w, r, c)
}

// CheckoutHandler converts the cart into an order. The flow is all-or-
// nothing: on any failure the cart is left untouched.
func (a *app) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	store := mw.RequestCartStore{W: w, R: r}
	c := store.Load()

	token := mw.TokenFromRequest(r)
	if token == "" {
		openLoginModal(w)
		a.renderCart(w, r, c)
		return
	}

	if c.Empty() {
		// nothing to order, no backend call
		a.renderCart(w, r, c)
		return
	}

	notifier := mw.Notifier(r)
	if err := a.api.CreateOrder(r.Context(), token, c.ProductIDs()); err != nil {
		if api.IsUnauthorized(err) {
			sessionExpired(w, r)
			return
		}
		detail := "Failed to place order."
		if apiErr, ok := api.AsError(err); ok && apiErr.Detail != "" {
			detail = "Failed to place order: " + apiErr.Detail
		}
		notifier.Notify(notify.Error, detail)
		a.renderCart(w, r, c)
		return
	}

	c.Clear()
	store.Save(c)
	notifier.Notify(notify.Success, "Order placed successfully!")
	redirect(w, r, "/profile")
}

// renderCart emits the cart fragment for htmx callers and falls back to the
// gallery for plain form posts.
func (a *app) renderCart(w http.ResponseWriter, r *http.Request, c *cart.Cart) {
	if mw.IsHTMX(r.Context()) {
		renderTemplate(w, r, "frag_cart", buildCartView(c))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
