package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/acsops/acs-console/internal/auth"
	"github.com/acsops/acs-console/internal/metrics"
)

// loginRequest is the POST /api/login body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin authenticates an operator and returns a session token.
// POST /api/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "username and password are required")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Same message whether the account is missing or the
			// password is wrong, so usernames can't be enumerated.
			metrics.RecordAuthFailure("bad_credentials")
			h.logger.Warn("failed login attempt", "username", req.Username, "remote_addr", r.RemoteAddr)
			WriteError(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid username or password")
			return
		}
		h.writeStoreError(w, err)
		return
	}

	h.logger.Info("login", "username", req.Username)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// HandleVerifyToken returns the identity claims of the bearer token.
// Behind the auth middleware in the router; the guard covers direct use.
// POST /api/verify-token
func (h *Handler) HandleVerifyToken(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		WriteError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "missing token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]string{
			"userId":   claims.UserID,
			"username": claims.Username,
			"roles":    claims.Roles,
		},
	})
}
