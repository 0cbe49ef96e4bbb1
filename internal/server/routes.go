package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// RouterParams groups the dependencies for building the HTTP router.
type RouterParams struct {
	Clients *ClientHandler
	Orders  *OrderHandler
	Catalog *CatalogHandler
	Export  *ExportHandler
	Pricing *PricingHandler
	Metrics *Metrics
}

// NewRouter constructs the API router with the standard middleware chain.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(loggingMiddleware)
	r.Use(corsMiddleware)
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Reads are unthrottled; writes share a per-IP budget.
		r.Use(mutationRateLimit(120, time.Minute))

		params.Clients.MountRoutes(r)
		params.Orders.MountRoutes(r)
		params.Catalog.MountRoutes(r)
		params.Export.MountRoutes(r)
		params.Pricing.MountRoutes(r)
	})

	return r
}

// mutationRateLimit applies an httprate limit to non-GET requests only.
func mutationRateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	limiter := httprate.Limit(limit, window, httprate.WithKeyFuncs(httprate.KeyByIP))
	return func(next http.Handler) http.Handler {
		limited := limiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}
