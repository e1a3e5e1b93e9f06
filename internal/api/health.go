package api

import "net/http"

// HandleHealth returns OK if the process is alive.
// GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleReady returns OK if the service can reach the document store.
// GET /ready
func (h *Handler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error("readiness check failed", "error", err)
		WriteError(w, http.StatusServiceUnavailable, ErrCodeUpstreamUnavailable, "document store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
