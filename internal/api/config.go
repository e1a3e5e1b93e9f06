package api

import (
	"encoding/json"
	"net/http"

	"github.com/acsops/acs-console/internal/store"
)

// HandleGetConfig returns the console configuration, creating the
// default document on first read.
// GET /api/config
func (h *Handler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.GetConfig(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// HandlePutConfig replaces the whole configuration document. Callers
// must supply a complete document; there is no field-level merge.
// PUT /api/config
func (h *Handler) HandlePutConfig(w http.ResponseWriter, r *http.Request) {
	var cfg store.ConsoleConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if cfg.CacheExpiryMinutes < 0 {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "cacheExpiryMinutes must not be negative")
		return
	}

	if err := h.store.PutConfig(r.Context(), &cfg); err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.logger.Info("config updated",
		"companyName", cfg.CompanyName,
		"cacheEnabled", cfg.CacheEnabled,
		"cacheExpiryMinutes", cfg.CacheExpiryMinutes,
	)
	writeJSON(w, http.StatusOK, cfg)
}
