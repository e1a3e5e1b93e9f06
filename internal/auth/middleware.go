package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/acsops/acs-console/internal/metrics"
)

// Verifier validates session tokens. Implemented by Authenticator.
type Verifier interface {
	Verify(tokenString string) (*Claims, error)
}

// Middleware returns chi-compatible middleware that requires a valid
// bearer session token. A missing token yields 401, an invalid or
// expired one 403. On success the claims are attached to the context.
func Middleware(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				metrics.RecordAuthFailure("missing_token")
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing token")
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				metrics.RecordAuthFailure("invalid_token")
				writeJSONError(w, http.StatusForbidden, "forbidden", "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin returns middleware that rejects sessions whose role is
// not the reserved admin role. Must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || !claims.Role().IsAdmin() {
			metrics.RecordAuthFailure("admin_required")
			writeJSONError(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractBearerToken gets the token from an "Authorization: Bearer <token>" header.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// writeJSONError writes an {error, message} JSON error response.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": message})
}
