// Package proxy forwards unhandled /api requests to the upstream NBI.
package proxy

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/acsops/acs-console/internal/metrics"
)

// New returns a handler that forwards requests to the NBI at target,
// with the /api prefix stripped (/api/devices -> /devices). When the
// NBI is unreachable the client gets a 503 with a JSON error body,
// distinguishable from authentication failures.
func New(target *url.URL, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("NBI proxy error", "path", r.URL.Path, "error", err)
			metrics.RecordUpstreamError("unreachable")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			//nolint:errcheck
			_ = json.NewEncoder(w).Encode(map[string]string{
				"message": "NBI service unavailable",
			})
		},
	}

	return http.StripPrefix("/api", rp)
}
