// Package nav tracks which storefront view is visible and keeps browser
// history in sync. Transitions take a record flag: history-originated
// transitions pass false so back/forward never re-pushes a duplicate entry.
package nav

import (
	"fmt"
	"strconv"
	"strings"
)

// View identifies one of the mutually exclusive storefront views.
type View int

const (
	Gallery View = iota
	Product
	Profile
)

func (v View) String() string {
	switch v {
	case Product:
		return "product"
	case Profile:
		return "profile"
	default:
		return "gallery"
	}
}

// State is the navigation state: the active view plus, for Product, the
// product id. The zero value is the Gallery state.
type State struct {
	View      View
	ProductID int64
}

// GalleryState returns the default state.
func GalleryState() State { return State{View: Gallery} }

// ProductState returns the single-product state for id.
func ProductState(id int64) State { return State{View: Product, ProductID: id} }

// ProfileState returns the profile/orders state.
func ProfileState() State { return State{View: Profile} }

// Fragment returns the URL fragment for the state: "#product-<id>",
// "#profile", or "" for the gallery.
func (s State) Fragment() string {
	switch s.View {
	case Product:
		return fmt.Sprintf("#product-%d", s.ProductID)
	case Profile:
		return "#profile"
	default:
		return ""
	}
}

// ParseFragment maps a URL fragment back to a state. Anything unrecognized
// falls back to the gallery, matching the pop handler's fallback rule.
func ParseFragment(frag string) State {
	frag = strings.TrimPrefix(strings.TrimSpace(frag), "#")
	switch {
	case frag == "profile":
		return ProfileState()
	case strings.HasPrefix(frag, "product-"):
		id, err := strconv.ParseInt(strings.TrimPrefix(frag, "product-"), 10, 64)
		if err != nil || id <= 0 {
			return GalleryState()
		}
		return ProductState(id)
	default:
		return GalleryState()
	}
}

// History receives recorded transitions. The web layer pushes real browser
// history via htmx; tests use a slice-backed stack.
type History interface {
	Push(State)
}

// Hooks are render/side-effect signals fired after each transition. Entering
// the profile view triggers the profile fetch; all hooks are optional.
type Hooks struct {
	OnGallery func()
	OnProduct func(id int64)
	OnProfile func()
}

// Navigator is the view-routing state machine. It owns the current state and
// guards transitions: ShowProduct requires the id to resolve in the loaded
// catalog, ShowProfile requires an authentication token.
type Navigator struct {
	resolve func(int64) bool
	token   func() string
	history History
	hooks   Hooks
	current State
}

// New builds a navigator. resolve reports whether a product id is currently
// loaded; token returns the bearer token or "" when logged out; history may
// be nil when transitions never record.
func New(resolve func(int64) bool, token func() string, history History) *Navigator {
	if resolve == nil {
		resolve = func(int64) bool { return false }
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Navigator{resolve: resolve, token: token, history: history, current: GalleryState()}
}

// SetHooks installs transition signals.
func (n *Navigator) SetHooks(h Hooks) { n.hooks = h }

// Current returns the active state.
func (n *Navigator) Current() State { return n.current }

// ShowGallery makes the gallery visible. record pushes a history entry for
// user-initiated transitions.
func (n *Navigator) ShowGallery(record bool) {
	n.current = GalleryState()
	n.record(record)
	if n.hooks.OnGallery != nil {
		n.hooks.OnGallery()
	}
}

// ShowProduct switches to the single-product view for id. An id that does not
// resolve to a loaded product is a silent no-op. It reports whether the
// transition happened.
func (n *Navigator) ShowProduct(id int64, record bool) bool {
	if !n.resolve(id) {
		return false
	}
	n.current = ProductState(id)
	n.record(record)
	if n.hooks.OnProduct != nil {
		n.hooks.OnProduct(id)
	}
	return true
}

// ShowProfile switches to the profile view. Without a token it is a silent
// no-op. It reports whether the transition happened.
func (n *Navigator) ShowProfile(record bool) bool {
	if n.token() == "" {
		return false
	}
	n.current = ProfileState()
	n.record(record)
	if n.hooks.OnProfile != nil {
		n.hooks.OnProfile()
	}
	return true
}

// HandlePop dispatches a restored history entry to the matching transition
// with recording disabled. An entry with no recognized tag falls back to the
// gallery; a product entry that no longer resolves does too, so back
// navigation always lands somewhere sensible.
func (n *Navigator) HandlePop(s State) {
	switch s.View {
	case Product:
		if !n.ShowProduct(s.ProductID, false) {
			n.ShowGallery(false)
		}
	case Profile:
		if !n.ShowProfile(false) {
			n.ShowGallery(false)
		}
	default:
		n.ShowGallery(false)
	}
}

func (n *Navigator) record(record bool) {
	if record && n.history != nil {
		n.history.Push(n.current)
	}
}

// Crumb is a breadcrumb entry for the current state.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Breadcrumbs builds the trail for a state. Product crumbs use the given
// product name; other states ignore it.
func Breadcrumbs(s State, productName string) []Crumb {
	crumbs := []Crumb{{Href: "/", Label: "All Products", Active: s.View == Gallery}}
	switch s.View {
	case Product:
		label := productName
		if label == "" {
			label = fmt.Sprintf("Product %d", s.ProductID)
		}
		crumbs = append(crumbs, Crumb{Href: "/product/" + strconv.FormatInt(s.ProductID, 10), Label: label, Active: true})
	case Profile:
		crumbs = append(crumbs, Crumb{Href: "/profile", Label: "My Profile", Active: true})
	}
	return crumbs
}
