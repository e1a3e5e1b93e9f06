package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acsops/acs-console/internal/store"
)

// HandleListPermissions returns permission records. The SPA fetches
// them once per session; with ?role= the listing is narrowed to one
// role's records server-side.
// GET /api/permissions?role=
func (h *Handler) HandleListPermissions(w http.ResponseWriter, r *http.Request) {
	var perms []*store.Permission
	var err error
	if role := r.URL.Query().Get("role"); role != "" {
		perms, err = h.store.ListPermissionsByRole(r.Context(), role)
	} else {
		perms, err = h.store.ListPermissions(r.Context())
	}
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, perms)
}

// permissionRequest is the POST /api/permissions body.
type permissionRequest struct {
	ID       string `json:"_id"`
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Access   int    `json:"access"`
	Validate *bool  `json:"validate"`
	Filter   string `json:"filter"`
}

// HandleCreatePermission creates a permission record. When no ID is
// given the role:resource:access composite is used.
// POST /api/permissions
func (h *Handler) HandleCreatePermission(w http.ResponseWriter, r *http.Request) {
	var req permissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}
	if req.Role == "" || req.Resource == "" {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "role and resource are required")
		return
	}
	if req.Access < 0 {
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "access level must not be negative")
		return
	}

	perm := &store.Permission{
		ID:       req.ID,
		Role:     req.Role,
		Resource: req.Resource,
		Access:   req.Access,
		Validate: true,
		Filter:   req.Filter,
	}
	if req.Validate != nil {
		perm.Validate = *req.Validate
	}

	if err := h.store.CreatePermission(r.Context(), perm); err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.logger.Info("permission created", "id", perm.ID, "role", perm.Role, "resource", perm.Resource)
	writeJSON(w, http.StatusCreated, perm)
}

// HandleDeletePermission removes a permission record by ID.
// DELETE /api/permissions/{id}
func (h *Handler) HandleDeletePermission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeletePermission(r.Context(), id); err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.logger.Info("permission deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
