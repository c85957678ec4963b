package main

import (
	"html/template"

	"github.com/techmart/storefront/internal/api"
	"github.com/techmart/storefront/internal/cms"
	"github.com/techmart/storefront/internal/format"
)

// ProductView is the single-product page/fragment view model.
type ProductView struct {
	ID           int64
	Name         string
	Category     string
	Specs        string
	Description  template.HTML
	PriceDisplay string
	Stock        int
	InStock      bool
	ImageURL     string
}

func buildProductView(p api.Product) ProductView {
	category := p.Category
	if category == "" {
		category = "General"
	}
	return ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Category:     category,
		Specs:        p.Specs,
		Description:  cms.Markdown(p.Description),
		PriceDisplay: format.USD(p.Price),
		Stock:        p.Stock,
		InStock:      p.Stock > 0,
		ImageURL:     p.ImageURL,
	}
}
