// Package web provides the HTTP server and handlers for the catalog API.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mechvault/catalog/internal/admin"
	"github.com/mechvault/catalog/internal/catalog"
	"github.com/mechvault/catalog/internal/config"
	mw "github.com/mechvault/catalog/internal/web/middleware"
)

// Server is the HTTP server for the catalog service. The public /api routes
// serve the storefront; /api/admin routes are guarded by API-key auth.
type Server struct {
	cfg       *config.Config
	catalog   *catalog.Service
	products  *admin.ProductStore
	orders    *admin.OrderStore
	customers *admin.CustomerStore
	router    *chi.Mux
	server    *http.Server
	limiter   *mw.RateLimiter
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config, svc *catalog.Service, products *admin.ProductStore, orders *admin.OrderStore, customers *admin.CustomerStore) *Server {
	s := &Server{
		cfg:       cfg,
		catalog:   svc,
		products:  products,
		orders:    orders,
		customers: customers,
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.limiter = mw.NewRateLimiter(s.cfg.Rate.RequestsPerMinute, s.cfg.Rate.Burst)
		s.router.Use(s.limiter.Handler)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Storefront catalog
		r.Get("/products", s.handleProducts)
		r.Get("/categories", s.handleCategories)

		// Admin surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.APIKeyAuth(&s.cfg.Security))

			r.Get("/products", s.handleAdminListProducts)
			r.Post("/products", s.handleAdminCreateProduct)
			r.Put("/products/{id}", s.handleAdminUpdateProduct)
			r.Delete("/products/{id}", s.handleAdminDeleteProduct)
			r.Post("/products/{id}/toggle", s.handleAdminToggleProduct)

			r.Get("/orders", s.handleAdminListOrders)
			r.Post("/orders/{id}/status", s.handleAdminOrderStatus)

			r.Get("/customers", s.handleAdminListCustomers)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and the rate limiter's background
// eviction goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses. The Content
// Security Policy is optional so deployments fronted by a CDN that injects
// its own policy can turn it off.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			w.Header().Set("X-Frame-Options", "DENY")

			// Control referrer information
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if enableCSP {
				w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			}

			next.ServeHTTP(w, r)
		})
	}
}
