package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/acsops/acs-console/internal/auth"
	"github.com/acsops/acs-console/internal/metrics"
	"github.com/acsops/acs-console/internal/middleware"
)

// RouterConfig bundles everything the router needs.
type RouterConfig struct {
	Handler  *Handler
	Verifier auth.Verifier
	NBIProxy http.Handler
	WebDist  string
	Logger   *slog.Logger
}

// NewRouter configures the HTTP router with all routes and middleware.
//
// /api/login is the only unauthenticated API endpoint. Every other
// /api route, including the catch-all NBI forward, requires a valid
// session token. Unmatched GET requests serve the SPA.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(cfg.Logger))
	r.Use(metrics.Middleware)

	r.Get("/health", cfg.Handler.HandleHealth)
	r.Get("/ready", cfg.Handler.HandleReady)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", cfg.Handler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(cfg.Verifier))

			r.Post("/verify-token", cfg.Handler.HandleVerifyToken)
			r.Get("/permissions", cfg.Handler.HandleListPermissions)
			r.Get("/config", cfg.Handler.HandleGetConfig)
			r.Put("/config", cfg.Handler.HandlePutConfig)
			r.Delete("/cache/clear", cfg.Handler.HandleCacheClear)
			r.Get("/devices/page", cfg.Handler.HandleDevicesPage)

			// Account and permission management is admin-only.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Get("/users", cfg.Handler.HandleListUsers)
				r.Post("/users", cfg.Handler.HandleCreateUser)
				r.Put("/users/{username}", cfg.Handler.HandleUpdateUser)
				r.Delete("/users/{username}", cfg.Handler.HandleDeleteUser)
				r.Post("/permissions", cfg.Handler.HandleCreatePermission)
				r.Delete("/permissions/{id}", cfg.Handler.HandleDeletePermission)
			})

			// Everything else under /api is forwarded to the NBI with
			// the prefix stripped.
			r.Handle("/*", cfg.NBIProxy)
		})
	})

	// Non-API GETs fall through to the SPA.
	r.NotFound(SPAHandler(cfg.WebDist).ServeHTTP)

	return r
}
