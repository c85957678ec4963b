package middleware

import (
	"net/http"
)

// HTMX marks requests coming from htmx so handlers can adapt responses, and
// flags history restoration requests (the browser back/forward handler):
// view transitions serving those must not record new history.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithHTMX(r.Context(), r.Header.Get("HX-Request") == "true")
		ctx = WithHistoryRestore(ctx, r.Header.Get("HX-History-Restore-Request") == "true")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
