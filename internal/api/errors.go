package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/acsops/acs-console/internal/store"
)

// Standard error codes for API responses.
const (
	// ErrCodeInvalidRequest indicates a malformed request or missing fields.
	ErrCodeInvalidRequest = "invalid_request"

	// ErrCodeInvalidCredentials indicates a failed login.
	ErrCodeInvalidCredentials = "invalid_credentials"

	// ErrCodeUnauthorized indicates a request with no session token.
	ErrCodeUnauthorized = "unauthorized"

	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"

	// ErrCodeDuplicate indicates a unique key conflict.
	ErrCodeDuplicate = "duplicate"

	// ErrCodeUpstreamUnavailable indicates the document store or NBI is unreachable.
	ErrCodeUpstreamUnavailable = "upstream_unavailable"

	// ErrCodeInternalError indicates a server error.
	ErrCodeInternalError = "internal_error"
)

// APIError is the standard error response format.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response with the given status code,
// error code and message.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors are not critical since headers are already sent.
	//nolint:errcheck
	_ = json.NewEncoder(w).Encode(APIError{Error: code, Message: message})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	_ = json.NewEncoder(w).Encode(data)
}

// writeStoreError translates store failures to the error taxonomy:
// missing documents are 404, key conflicts 409 and anything else is the
// document store being unreachable (503).
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, http.StatusNotFound, ErrCodeNotFound, "resource not found")
	case errors.Is(err, store.ErrDuplicate):
		WriteError(w, http.StatusConflict, ErrCodeDuplicate, "resource already exists")
	default:
		h.logger.Error("store error", "error", err)
		WriteError(w, http.StatusServiceUnavailable, ErrCodeUpstreamUnavailable, "document store unavailable")
	}
}
