package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/techmart/storefront/internal/cart"
)

// The cart lives in its own signed cookie, separate from the session: it is
// client-owned durable state that survives logout.
const cartCookieName = "techmart_cart"

func cartCodec() cart.Codec { return cart.NewCodec(sessionSignKey) }

// Cart loads the persisted cart into request context. An absent or mangled
// cookie silently yields an empty cart.
func Cart(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := cart.New()
		if cookie, err := r.Cookie(cartCookieName); err == nil {
			c = cartCodec().Decode(cookie.Value)
		}
		ctx := context.WithValue(r.Context(), ctxKeyCart, c)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CartFromRequest returns the request's cart model. Mutations must be
// followed by SaveCart before the response is written.
func CartFromRequest(r *http.Request) *cart.Cart {
	if v := r.Context().Value(ctxKeyCart); v != nil {
		if c, ok := v.(*cart.Cart); ok {
			return c
		}
	}
	return cart.New()
}

// SaveCart persists the cart snapshot to its cookie.
func SaveCart(w http.ResponseWriter, c *cart.Cart) {
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    cartCodec().Encode(c),
		Path:     "/",
		HttpOnly: true,
		Secure:   sessionSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
}

// RequestCartStore adapts one request/response pair to the cart.Store
// contract used by the checkout flow.
type RequestCartStore struct {
	W http.ResponseWriter
	R *http.Request
}

func (s RequestCartStore) Load() *cart.Cart  { return CartFromRequest(s.R) }
func (s RequestCartStore) Save(c *cart.Cart) { SaveCart(s.W, c) }
