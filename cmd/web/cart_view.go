package main

import (
	"github.com/techmart/storefront/internal/cart"
	"github.com/techmart/storefront/internal/format"
)

// CartView backs the cart panel fragment.
type CartView struct {
	Items        []CartRow
	Empty        bool
	Count        int
	TotalDisplay string
}

// CartRow is one line item in the cart panel.
type CartRow struct {
	ProductID    int64
	Name         string
	ImageURL     string
	Quantity     int
	UnitDisplay  string
	LineDisplay  string
}

func buildCartView(c *cart.Cart) CartView {
	v := CartView{
		Empty:        c.Empty(),
		Count:        c.ItemCount(),
		TotalDisplay: format.USD(c.Total()),
	}
	for _, it := range c.Items() {
		v.Items = append(v.Items, CartRow{
			ProductID:   it.ProductID,
			Name:        it.Name,
			ImageURL:    it.ImageURL,
			Quantity:    it.Quantity,
			UnitDisplay: format.USD(it.UnitPrice),
			LineDisplay: format.USD(it.UnitPrice * int64(it.Quantity)),
		})
	}
	return v
}
