package main

import (
	"strconv"

	"github.com/techmart/storefront/internal/api"
	"github.com/techmart/storefront/internal/format"
	"github.com/techmart/storefront/internal/status"
)

// ProfileView is the account page model: identity, shipping address, and the
// order history table.
type ProfileView struct {
	Email      string
	HasAddress bool
	Street     string
	City       string
	ZipCode    string
	Orders     []OrderRow
	HasOrders  bool
}

// OrderRow is one order in the history table with its display-ready status.
type OrderRow struct {
	ID           int64
	IDDisplay    string
	PlacedAt     string
	TotalDisplay string
	StatusLabel  string
	StatusTone   string
	Cancelable   bool
}

func buildProfileView(p api.Profile) ProfileView {
	v := ProfileView{Email: p.Email}
	if p.Address != nil {
		v.HasAddress = true
		v.Street = p.Address.Street
		v.City = p.Address.City
		v.ZipCode = p.Address.ZipCode
	}
	for _, o := range p.Orders {
		v.Orders = append(v.Orders, buildOrderRow(o))
	}
	v.HasOrders = len(v.Orders) > 0
	return v
}

func buildOrderRow(o api.Order) OrderRow {
	st := status.ForOrder(o.Status)
	return OrderRow{
		ID:           o.ID,
		IDDisplay:    "#" + strconv.FormatInt(o.ID, 10),
		PlacedAt:     format.Date(o.CreatedAt),
		TotalDisplay: format.USD(o.TotalPrice),
		StatusLabel:  st.Label,
		StatusTone:   st.Tone,
		Cancelable:   st.Cancelable,
	}
}

// CancelConfirmView backs the order-cancel confirmation dialog.
type CancelConfirmView struct {
	OrderID   int64
	IDDisplay string
}
