// Package api implements the console's HTTP handlers and router.
package api

import (
	"log/slog"

	"github.com/acsops/acs-console/internal/auth"
	"github.com/acsops/acs-console/internal/devcache"
	"github.com/acsops/acs-console/internal/store"
)

// Handler bundles the dependencies of the console's own endpoints.
type Handler struct {
	store  store.Store
	auth   *auth.Authenticator
	cache  *devcache.Cache
	logger *slog.Logger
}

// NewHandler creates a Handler.
// If logger is nil, slog.Default() will be used.
func NewHandler(st store.Store, a *auth.Authenticator, cache *devcache.Cache, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  st,
		auth:   a,
		cache:  cache,
		logger: logger,
	}
}
