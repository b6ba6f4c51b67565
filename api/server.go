/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/articles/*          Catalog
  /api/rental-requests/*   Booking workflow
  /api/confirmed-rentals   Public ledger
  /api/cleanup-rentals     Ledger maintenance
  /api/contact             Contact form
  /mietdaten.json          Legacy public ledger alias
  /metrics                 Prometheus
  /*                       Static files (frontend + admin panel)

STATIC FILE SERVING:
  Serves the site from the configured static directory; /admin serves
  admin.html, unknown paths fall back to index.html.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, staticDir string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog routes
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", h.ListArticles)
			r.Post("/", h.CreateArticle)
			r.Get("/category/{category}", h.ListArticlesByCategory)
			r.Get("/{id}", h.GetArticle)
			r.Put("/{id}", h.UpdateArticle)
			r.Delete("/{id}", h.DeleteArticle)
		})

		// Booking routes
		r.Route("/rental-requests", func(r chi.Router) {
			r.Get("/", h.ListRentalRequests)
			r.Post("/", h.SubmitRentalRequest)
			r.Put("/{id}", h.DecideRentalRequest)
			r.Delete("/{id}", h.DeleteRentalRequest)
		})

		// Ledger routes
		r.Get("/confirmed-rentals", h.ListConfirmedRentals)
		r.Post("/cleanup-rentals", h.CleanupRentals)

		// Contact form
		r.Post("/contact", h.SubmitContact)
	})

	// The booking calendar has always fetched this path directly.
	r.Get("/mietdaten.json", h.ListConfirmedRentals)

	// Metrics
	r.Handle("/metrics", promhttp.Handler())

	// Static frontend
	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))

		r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, filepath.Join(staticDir, "admin.html"))
		})

		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, r.URL.Path)
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	}

	return r
}
