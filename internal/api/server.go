// Package api provides the HTTP API server and handlers for the Plateful application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/platefulapp/plateful-server/internal/ratelimit"
	"github.com/platefulapp/plateful-server/internal/service"
	"github.com/platefulapp/plateful-server/internal/store"
)

const apiVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	services        *service.Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *ratelimit.KeyedRateLimiter
}

// Options configures server construction.
type Options struct {
	Name          string
	AuthRateRPS   float64
	AuthRateBurst int
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *service.Services, logger *slog.Logger, opts Options) *Server {
	if opts.Name == "" {
		opts.Name = "Plateful API"
	}
	if opts.AuthRateRPS <= 0 {
		opts.AuthRateRPS = 1
	}
	if opts.AuthRateBurst <= 0 {
		opts.AuthRateBurst = 5
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authLimiter := ratelimit.New(opts.AuthRateRPS, opts.AuthRateBurst)
	router.Use(rateLimitMiddleware(authLimiter, "/api/v1/auth/", logger))
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig(opts.Name, apiVersion)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		api:             api,
		logger:          logger,
		authRateLimiter: authLimiter,
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerRecipeRoutes()
	s.registerShelfRoutes()
	s.registerTagRoutes()
	s.registerCommunityRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.authRateLimiter.Stop()
}
