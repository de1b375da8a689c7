package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/layerkit/layerkit/internal/handler"
	"github.com/layerkit/layerkit/internal/middleware"
)

type routerDeps struct {
	pages   *handler.Handler
	admin   *handler.AdminHandler
	health  *handler.HealthHandler
	metrics *handler.MetricsHandler
	isDev   bool
	logger  *slog.Logger
}

// newRouter configures the chi router with all routes and middleware.
func newRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger, d.isDev))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: d.isDev}))

	r.Get("/health", d.health.Health)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/metrics", d.metrics.Metrics)

	r.Get("/", d.pages.Home)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/", d.pages.AdminHome)

		r.Route("/api/users", func(r chi.Router) {
			r.Use(middleware.MaxBodySize(middleware.DefaultSecurityConfig().MaxRequestBodySize))
			r.Get("/", d.admin.LookupUser)
			r.Put("/", d.admin.PersistUser)
		})
	})

	r.NotFound(d.pages.NotFound)
	r.MethodNotAllowed(d.pages.MethodNotAllowed)

	return r
}
