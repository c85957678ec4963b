package main

import (
	"net/http"
	"strings"

	"github.com/techmart/storefront/internal/api"
	mw "github.com/techmart/storefront/internal/middleware"
	"github.com/techmart/storefront/internal/notify"
)

// LoginHandler exchanges credentials for a backend token and binds it to the
// session. The session id rotates on success.
func (a *app) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	sess := mw.GetSession(r)

	if email == "" || password == "" {
		sess.Flash(notify.Error, "Email and password are required.")
		refresh(w, r)
		return
	}

	token, err := a.api.Login(r.Context(), email, password)
	if err != nil {
		sess.Flash(notify.Error, "Login failed. Check your email and password.")
		refresh(w, r)
		return
	}

	sess.SetToken(token, email)
	sess.Flash(notify.Success, "Welcome back!")
	refresh(w, r)
}

// RegisterHandler creates an account and logs it in straight away.
func (a *app) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	sess := mw.GetSession(r)

	if email == "" || username == "" || len(password) < 8 {
		sess.Flash(notify.Error, "Registration needs an email, a username, and a password of at least 8 characters.")
		refresh(w, r)
		return
	}

	if err := a.api.Register(r.Context(), email, username, password); err != nil {
		detail := "Registration failed."
		if apiErr, ok := api.AsError(err); ok && apiErr.Detail != "" {
			detail = "Registration failed: " + apiErr.Detail
		}
		sess.Flash(notify.Error, detail)
		refresh(w, r)
		return
	}

	token, err := a.api.Login(r.Context(), email, password)
	if err != nil {
		sess.Flash(notify.Success, "Account created. Please log in.")
		refresh(w, r)
		return
	}

	sess.SetToken(token, email)
	sess.Flash(notify.Success, "Welcome to TechMart!")
	refresh(w, r)
}

// LogoutHandler drops the token and reloads logged out. The cart survives a
// logout on purpose.
func (a *app) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	sess.ClearToken()
	sess.Flash(notify.Info, "You have been logged out.")
	refresh(w, r)
}
