package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acsops/acs-console/internal/auth"
	"github.com/acsops/acs-console/internal/store"
)

// userRequest is the body for creating or updating an account.
type userRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleListUsers lists all operator accounts.
// GET /api/users
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleCreateUser registers a new operator account.
// POST /api/users
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" || req.Role == "" {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "username, password and role are required")
		return
	}

	hash, salt, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
		return
	}

	user := &store.User{
		Username:     req.Username,
		PasswordHash: hash,
		Salt:         salt,
		Role:         req.Role,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.logger.Info("user created", "username", req.Username, "role", req.Role)
	writeJSON(w, http.StatusCreated, user)
}

// HandleUpdateUser changes an account's password and/or role.
// A new password is hashed with a freshly generated salt.
// PUT /api/users/{username}
func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if req.Password == "" && req.Role == "" {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "nothing to update")
		return
	}

	if req.Password != "" {
		hash, salt, err := auth.HashPassword(req.Password)
		if err != nil {
			h.logger.Error("failed to hash password", "error", err)
			WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
			return
		}
		if err := h.store.UpdateUserPassword(r.Context(), username, hash, salt); err != nil {
			h.writeStoreError(w, err)
			return
		}
	}

	if req.Role != "" {
		if err := h.store.UpdateUserRole(r.Context(), username, req.Role); err != nil {
			h.writeStoreError(w, err)
			return
		}
	}

	h.logger.Info("user updated", "username", username)
	writeJSON(w, http.StatusOK, map[string]string{"username": username})
}

// HandleDeleteUser removes an operator account.
// DELETE /api/users/{username}
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.store.DeleteUser(r.Context(), username); err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.logger.Info("user deleted", "username", username)
	w.WriteHeader(http.StatusNoContent)
}
