package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/techmart/storefront/internal/api"
	mw "github.com/techmart/storefront/internal/middleware"
	"github.com/techmart/storefront/internal/nav"
	"github.com/techmart/storefront/internal/notify"
)

// ProfileHandler renders the account page. The view router refuses the
// transition without a token, in which case the visitor is sent back to the
// gallery with the login prompt open.
func (a *app) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	n := a.navigator(r, w)
	if !n.ShowProfile(recordHistory(r)) {
		openLoginModal(w)
		redirect(w, r, "/")
		return
	}

	sess := mw.GetSession(r)
	profile, err := a.api.Me(r.Context(), sess.Token)
	if err != nil {
		if api.IsUnauthorized(err) {
			sessionExpired(w, r)
			return
		}
		sess.Flash(notify.Error, "Could not load your profile. Please try again.")
		redirect(w, r, "/")
		return
	}

	view := buildProfileView(profile)
	if mw.IsHTMX(r.Context()) && !mw.IsHistoryRestore(r.Context()) {
		renderTemplate(w, r, "frag_profile", view)
		return
	}
	vm := a.pageData(r, "My profile", "Your TechMart account.", nav.ProfileState(), "", view)
	renderPage(w, r, "profile", vm)
}

// AddressHandler saves the shipping address and re-renders the profile
// fragment with the backend's view of the account.
func (a *app) AddressHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	if sess.Token == "" {
		openLoginModal(w)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	addr := api.Address{
		Street:  r.PostFormValue("street"),
		City:    r.PostFormValue("city"),
		ZipCode: r.PostFormValue("zip_code"),
	}
	if err := a.api.SaveAddress(r.Context(), sess.Token, addr); err != nil {
		if api.IsUnauthorized(err) {
			sessionExpired(w, r)
			return
		}
		sess.Flash(notify.Error, "Failed to save address.")
		refresh(w, r)
		return
	}

	sess.Flash(notify.Success, "Address saved.")
	refresh(w, r)
}

// OrderCancelConfirmFrag serves the confirmation dialog before a cancel.
func (a *app) OrderCancelConfirmFrag(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	renderTemplate(w, r, "frag_cancel_confirm", CancelConfirmView{
		OrderID:   id,
		IDDisplay: "#" + strconv.FormatInt(id, 10),
	})
}

// OrderCancelHandler asks the backend to cancel an order. A rejection detail
// from the backend (already shipped, not yours) is surfaced verbatim.
func (a *app) OrderCancelHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	sess := mw.GetSession(r)
	if sess.Token == "" {
		openLoginModal(w)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := a.api.CancelOrder(r.Context(), sess.Token, id); err != nil {
		if api.IsUnauthorized(err) {
			sessionExpired(w, r)
			return
		}
		detail := "Failed to cancel order."
		if apiErr, ok := api.AsError(err); ok && apiErr.Detail != "" {
			detail = apiErr.Detail
		}
		sess.Flash(notify.Error, detail)
		refresh(w, r)
		return
	}

	sess.Flash(notify.Success, "Order cancelled.")
	refresh(w, r)
}
