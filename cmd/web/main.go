package main

import (
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/techmart/storefront/internal/api"
	"github.com/techmart/storefront/internal/catalog"
	"github.com/techmart/storefront/internal/cms"
	mw "github.com/techmart/storefront/internal/middleware"
	"github.com/techmart/storefront/internal/search"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode is set in main() based on env: TECHMART_DEV (preferred) or DEV (fallback)
	devMode   bool
	tmplCache *template.Template
)

// app bundles the storefront's collaborators: the backend API client, the
// loaded catalog snapshot, static pages, and per-session search debouncers.
type app struct {
	api     *api.Client
	catalog *catalog.Catalog
	pages   *cms.Store
	search  *search.Registry
}

func newApp(apiBaseURL, contentDir string) *app {
	return &app{
		api:     api.NewClient(apiBaseURL),
		catalog: catalog.New(),
		pages:   cms.NewStore(contentDir),
		search:  search.NewRegistry(search.DefaultQuiet),
	}
}

func main() {
	var (
		addr       string
		apiBaseURL string
		tmplPath   string
		pubPath    string
		contentDir string
	)
	// Port resolution: prefer TECHMART_PORT, then PORT, else 8080
	port := os.Getenv("TECHMART_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	flag.StringVar(&addr, "addr", ":"+port, "HTTP listen address")
	flag.StringVar(&apiBaseURL, "api", envOr("TECHMART_API_URL", "http://localhost:8000"), "backend API base URL")
	flag.StringVar(&tmplPath, "templates", templatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", publicDir, "public assets directory")
	flag.StringVar(&contentDir, "content", "content", "static pages directory")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath

	devMode = os.Getenv("TECHMART_DEV") != "" || os.Getenv("DEV") != ""

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			log.Fatalf("parse templates: %v", err)
		}
		tmplCache = tc
	}

	a := newApp(apiBaseURL, contentDir)
	r := newRouter(a)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("storefront listening on %s (devMode=%v, api=%s)", addr, devMode, apiBaseURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}

func newRouter(a *app) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy, RealIP uses X-Forwarded-For
	// to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.Cart)
	r.Use(mw.CSRF)
	r.Use(mw.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets"))))

	// Views
	r.Get("/", a.GalleryHandler)
	r.Get("/product/{id}", a.ProductHandler)
	r.Get("/profile", a.ProfileHandler)
	r.Get("/pages/{slug}", a.StaticPageHandler)

	// Search
	r.Get("/search/suggest", a.SearchSuggestHandler)

	// Cart
	r.Get("/cart", a.CartFrag)
	r.Post("/cart/items", a.CartAddHandler)
	r.Post("/cart/items/{id}/quantity", a.CartQuantityHandler)
	r.Post("/cart/items/{id}/remove", a.CartRemoveHandler)
	r.Post("/checkout", a.CheckoutHandler)

	// Auth
	r.Post("/login", a.LoginHandler)
	r.Post("/register", a.RegisterHandler)
	r.Post("/logout", a.LogoutHandler)
	r.Post("/profile/address", a.AddressHandler)
	r.Post("/orders/{id}/cancel", a.OrderCancelHandler)
	r.Get("/orders/{id}/cancel/confirm", a.OrderCancelConfirmFrag)

	// Catalog administration (token-gated upstream)
	r.Post("/products", a.ProductCreateHandler)
	r.Patch("/products/{id}", a.ProductUpdateHandler)
	r.Delete("/products/{id}", a.ProductDeleteHandler)

	return r
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func templates(w http.ResponseWriter) *template.Template {
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return nil
		}
		return tc
	}
	return tmplCache
}

// renderPage executes a full page template.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	renderTemplate(w, r, name, data)
}

// renderTemplate executes a named template (page or fragment). In dev mode,
// templates are reparsed on each request.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	t := templates(w)
	if t == nil {
		if !devMode {
			http.Error(w, "template not initialized", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}
