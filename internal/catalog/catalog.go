// Package catalog holds the in-memory product snapshot the storefront renders
// from. It replaces the ambient product-list global with an explicit store so
// routing and rendering can be tested without a backend.
package catalog

import (
	"sort"
	"sync"

	"github.com/techmart/storefront/internal/api"
)

// Catalog is a concurrency-safe snapshot of the loaded product list. A
// gallery load or admin CRUD replaces the snapshot wholesale; readers see the
// order the backend returned.
type Catalog struct {
	mu       sync.RWMutex
	products []api.Product
	byID     map[int64]int
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{byID: map[int64]int{}}
}

// Replace swaps in a fresh product list.
func (c *Catalog) Replace(products []api.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = make([]api.Product, len(products))
	copy(c.products, products)
	c.byID = make(map[int64]int, len(products))
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
}

// Find returns the loaded product with the given id.
func (c *Catalog) Find(id int64) (api.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return api.Product{}, false
	}
	return c.products[i], true
}

// Has reports whether id resolves to a loaded product. It is the navigator's
// resolver.
func (c *Catalog) Has(id int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byID[id]
	return ok
}

// List returns a copy of the snapshot in display order.
func (c *Catalog) List() []api.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]api.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories returns the distinct categories in the snapshot, sorted.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range c.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}

// Len returns the snapshot size.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
