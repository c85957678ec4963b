package api

import (
	"math"
	"strings"
	"time"
)

// Product mirrors the backend catalog record. Prices are carried in minor
// units (cents); the wire format's decimal is converted at the client
// boundary.
type Product struct {
	ID          int64
	Name        string
	Price       int64
	Stock       int
	Category    string
	Specs       string
	Description string
	ImageURL    string
}

// ProductInput carries the writable product fields for create/update calls.
type ProductInput struct {
	Name        string
	Category    string
	Specs       string
	Description string
	Price       int64
	Stock       int
	ImageURL    string
}

// Profile is the authenticated user's account view.
type Profile struct {
	Email   string
	Address *Address
	Orders  []Order
}

// Address is the shipping address attached to a profile.
type Address struct {
	Street  string
	City    string
	ZipCode string
}

// Order summarizes one placed order for the profile table.
type Order struct {
	ID         int64
	Status     string
	CreatedAt  time.Time
	TotalPrice int64
}

type productPayload struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Specs       string  `json:"specs"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

func (p productPayload) toProduct() Product {
	return Product{
		ID:          p.ID,
		Name:        strings.TrimSpace(p.Name),
		Price:       toMinorUnits(p.Price),
		Stock:       p.Stock,
		Category:    strings.TrimSpace(p.Category),
		Specs:       strings.TrimSpace(p.Specs),
		Description: p.Description,
		ImageURL:    strings.TrimSpace(p.ImageURL),
	}
}

type productInputPayload struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Specs       string  `json:"specs"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
}

func (in ProductInput) payload() productInputPayload {
	return productInputPayload{
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		Specs:       strings.TrimSpace(in.Specs),
		Description: in.Description,
		Price:       fromMinorUnits(in.Price),
		Stock:       in.Stock,
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
}

type profilePayload struct {
	Email   string          `json:"email"`
	Address *addressPayload `json:"address"`
	Orders  []orderPayload  `json:"orders"`
}

type addressPayload struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

type orderPayload struct {
	ID         int64   `json:"id"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
	TotalPrice float64 `json:"total_price"`
}

func (p profilePayload) toProfile() Profile {
	prof := Profile{Email: strings.TrimSpace(p.Email)}
	if p.Address != nil {
		prof.Address = &Address{
			Street:  strings.TrimSpace(p.Address.Street),
			City:    strings.TrimSpace(p.Address.City),
			ZipCode: strings.TrimSpace(p.Address.ZipCode),
		}
	}
	for _, o := range p.Orders {
		prof.Orders = append(prof.Orders, Order{
			ID:         o.ID,
			Status:     strings.TrimSpace(o.Status),
			CreatedAt:  parseTime(o.CreatedAt),
			TotalPrice: toMinorUnits(o.TotalPrice),
		})
	}
	return prof
}

// toMinorUnits converts a decimal wire price to cents, rounding half away
// from zero so 5.50 becomes 550 exactly.
func toMinorUnits(v float64) int64 {
	return int64(math.Round(v * 100))
}

func fromMinorUnits(v int64) float64 {
	return float64(v) / 100
}

func parseTime(val string) time.Time {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}
	}
	layouts := []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, val); err == nil {
			return ts
		}
	}
	return time.Time{}
}
