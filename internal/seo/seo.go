// Package seo builds page metadata for the storefront's head section.
package seo

import "strings"

// Data carries per-page SEO metadata.
type Data struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
}

// OpenGraph holds social preview fields.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

// ForPage fills a Data with sensible defaults: the OG block mirrors the page
// title/description unless overridden later.
func ForPage(title, description, canonical string) Data {
	brand := "TechMart"
	full := strings.TrimSpace(title)
	if full == "" {
		full = brand
	} else {
		full = full + " | " + brand
	}
	return Data{
		Title:       full,
		Description: description,
		Canonical:   canonical,
		OG: OpenGraph{
			Title:       full,
			Description: description,
			Type:        "website",
			URL:         canonical,
			SiteName:    brand,
		},
	}
}
