package main

import (
	"net/http"

	mw "github.com/techmart/storefront/internal/middleware"
	"github.com/techmart/storefront/internal/notify"
)

// redirect sends the browser to url: an htmx caller gets HX-Redirect so the
// whole page navigates, anyone else a 303.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// refresh reloads the current page, typically after auth state changed.
func refresh(w http.ResponseWriter, r *http.Request) {
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// sessionExpired handles a backend auth rejection on an action that carried a
// token: notify, drop the token, and reload logged out. No retry.
func sessionExpired(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	sess.ClearToken()
	sess.Flash(notify.Error, "Your session has expired. Please log in again.")
	refresh(w, r)
}

// openLoginModal asks the frontend to present the login prompt.
func openLoginModal(w http.ResponseWriter) {
	w.Header().Set("HX-Trigger", `{"auth:open-login": {}}`)
}
