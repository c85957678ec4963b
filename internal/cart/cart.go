// Package cart holds the in-memory shopping cart model. Line items snapshot
// product name/price/image at add time; they do not track later catalog edits.
package cart

// LineItem is one product entry in the cart with an aggregated quantity.
// The JSON shape is the persisted wire format, so field tags are load-bearing.
type LineItem struct {
	ProductID int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"` // minor units (cents)
	ImageURL  string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Snapshot carries the product fields copied into a new line item.
type Snapshot struct {
	ProductID int64
	Name      string
	UnitPrice int64
	ImageURL  string
}

// Cart is an ordered collection of line items. Insertion order is display
// order. At most one line item exists per product id, and quantities stay
// strictly positive; a decrement to zero or below removes the item.
type Cart struct {
	items []LineItem
}

// New builds a cart from existing line items, merging duplicates and dropping
// non-positive quantities so the invariants hold regardless of input.
func New(items ...LineItem) *Cart {
	c := &Cart{}
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if existing := c.find(it.ProductID); existing != nil {
			existing.Quantity += it.Quantity
			continue
		}
		c.items = append(c.items, it)
	}
	return c
}

// Add merges the product into the cart: an existing line item gains one unit,
// otherwise a new line item with quantity 1 is appended. No stock check is
// performed here.
func (c *Cart) Add(p Snapshot) {
	if existing := c.find(p.ProductID); existing != nil {
		existing.Quantity++
		return
	}
	c.items = append(c.items, LineItem{
		ProductID: p.ProductID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		ImageURL:  p.ImageURL,
		Quantity:  1,
	})
}

// Remove deletes the line item with the given product id. Removing an absent
// item is a no-op, not an error.
func (c *Cart) Remove(productID int64) {
	for i, it := range c.items {
		if it.ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// ChangeQuantity adds delta to the item's quantity. A missing item is a no-op;
// a resulting quantity of zero or below removes the item.
func (c *Cart) ChangeQuantity(productID int64, delta int) {
	it := c.find(productID)
	if it == nil {
		return
	}
	if it.Quantity+delta <= 0 {
		c.Remove(productID)
		return
	}
	it.Quantity += delta
}

// Clear empties the cart (post-checkout).
func (c *Cart) Clear() {
	c.items = nil
}

// Total returns the cart total in minor units. Accumulation is exact; display
// rounding happens at the formatting layer.
func (c *Cart) Total() int64 {
	var sum int64
	for _, it := range c.items {
		sum += it.UnitPrice * int64(it.Quantity)
	}
	return sum
}

// ItemCount is the sum of quantities, used for the header badge. Zero hides
// the badge.
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Empty reports whether the cart holds no line items.
func (c *Cart) Empty() bool { return len(c.items) == 0 }

// Len returns the number of distinct line items.
func (c *Cart) Len() int { return len(c.items) }

// Items returns a copy of the line items in display order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// ProductIDs expands the cart into a flat sequence of product ids repeated by
// quantity, one id per unit purchased. This is the order line representation
// the backend expects.
func (c *Cart) ProductIDs() []int64 {
	var ids []int64
	for _, it := range c.items {
		for i := 0; i < it.Quantity; i++ {
			ids = append(ids, it.ProductID)
		}
	}
	return ids
}

func (c *Cart) find(productID int64) *LineItem {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return &c.items[i]
		}
	}
	return nil
}
