// Package handlers holds view-model scaffolding shared by the web handlers.
package handlers

import (
	"os"

	"github.com/techmart/storefront/internal/middleware"
	"github.com/techmart/storefront/internal/nav"
	"github.com/techmart/storefront/internal/notify"
	"github.com/techmart/storefront/internal/seo"
)

// PageData is the layout envelope every full page render receives.
type PageData struct {
	Title       string
	Path        string
	Fragment    string // URL fragment for the active view, e.g. "#product-7"
	Breadcrumbs []nav.Crumb
	Categories  []string
	SEO         seo.Data
	Analytics   Analytics
	User        *middleware.User
	CSRFToken   string
	CartCount   int // zero hides the badge
	Flashes     []notify.Message
	View        any // the page-specific view model
}

// Analytics carries the optional tracking snippet configuration.
type Analytics struct {
	MeasurementID string
}

// LoadAnalyticsFromEnv reads the analytics configuration.
func LoadAnalyticsFromEnv() Analytics {
	return Analytics{MeasurementID: os.Getenv("TECHMART_ANALYTICS_ID")}
}
