package main

import (
	"github.com/techmart/storefront/internal/api"
	"github.com/techmart/storefront/internal/format"
)

// GalleryView is the product grid page/fragment view model.
type GalleryView struct {
	Heading        string
	ActiveCategory string
	Products       []ProductCard
	Empty          bool
	CanManage      bool // logged-in shoppers see the catalog admin controls
}

// ProductCard is one tile in the grid. Description, Stock, and PriceInput
// prefill the per-card edit form shown to logged-in shoppers.
type ProductCard struct {
	ID           int64
	Name         string
	Category     string
	Specs        string
	Description  string
	PriceDisplay string
	PriceInput   string
	Stock        int
	ImageURL     string
}

// SuggestView backs the search results dropdown.
type SuggestView struct {
	Query   string
	Results []SuggestItem
	Empty   bool
}

// SuggestItem is one row in the dropdown.
type SuggestItem struct {
	ID           int64
	Name         string
	PriceDisplay string
	ImageURL     string
}

func buildGalleryView(products []api.Product, activeCategory string, canManage bool) GalleryView {
	heading := "All Products"
	if activeCategory != "" {
		heading = activeCategory
	}
	v := GalleryView{
		Heading:        heading,
		ActiveCategory: activeCategory,
		Empty:          len(products) == 0,
		CanManage:      canManage,
	}
	for _, p := range products {
		v.Products = append(v.Products, buildProductCard(p))
	}
	return v
}

func buildProductCard(p api.Product) ProductCard {
	category := p.Category
	if category == "" {
		category = "General"
	}
	return ProductCard{
		ID:           p.ID,
		Name:         p.Name,
		Category:     category,
		Specs:        p.Specs,
		Description:  p.Description,
		PriceDisplay: format.USD(p.Price),
		PriceInput:   format.Amount(p.Price),
		Stock:        p.Stock,
		ImageURL:     p.ImageURL,
	}
}

func buildSuggestView(query string, products []api.Product) SuggestView {
	v := SuggestView{Query: query, Empty: len(products) == 0}
	for _, p := range products {
		v.Results = append(v.Results, SuggestItem{
			ID:           p.ID,
			Name:         p.Name,
			PriceDisplay: format.USD(p.Price),
			ImageURL:     p.ImageURL,
		})
	}
	return v
}
