package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// sensitiveHeaders are masked in access logs.
var sensitiveHeaders = map[string]bool{
	"Authorization": true,
	"Cookie":        true,
}

// AccessLog logs one line per request with method, path, status and
// duration. Header values for sensitive headers are masked.
func AccessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			start := time.Now()
			next.ServeHTTP(rec, r)
			duration := time.Since(start)

			logger.Info("request",
				"request_id", GetRequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", duration.Milliseconds(),
			)

			if logger.Enabled(r.Context(), slog.LevelDebug) {
				logger.Debug("request headers",
					"request_id", GetRequestID(r.Context()),
					"headers", maskHeaders(r.Header),
				)
			}
		})
	}
}

// maskHeaders returns a loggable copy of the headers with sensitive
// values replaced.
func maskHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		if len(v) == 0 {
			continue
		}
		if sensitiveHeaders[k] {
			out[k] = "****"
		} else {
			out[k] = v[0]
		}
	}
	return out
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.status = http.StatusOK
		w.written = true
	}
	return w.ResponseWriter.Write(b)
}
