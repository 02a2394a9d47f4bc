package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sada-news/backend/middleware"
	"github.com/sada-news/backend/models"
	"github.com/sada-news/backend/store"
)

// UsersHandler implements the admin user-management endpoints. Every route
// is mounted behind Auth + RequireRole(admin).
type UsersHandler struct {
	Store store.Store
}

// List returns all users. Password hashes are omitted via json:"-".
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

type CreateUserRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// Create adds a user. Admin accounts cannot be created through the API;
// admin-created users are approved immediately.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(strings.ToLower(req.Username))
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "username, email and password required")
		return
	}
	role := strings.TrimSpace(strings.ToLower(req.Role))
	if role == "" {
		role = models.RoleViewer
	}
	if role == models.RoleAdmin {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "cannot create admin users via API")
		return
	}
	if !models.RoleValid(role) {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid role; use editor or viewer")
		return
	}
	for _, p := range req.Permissions {
		if !models.PermissionValid(p) {
			fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid permission: "+p)
			return
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(w, err)
		return
	}
	now := time.Now()
	user := &models.User{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hash),
		Role:        role,
		Permissions: req.Permissions,
		IsActive:    true,
		IsApproved:  true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := h.Store.CreateUser(r.Context(), user); err != nil {
		storeError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// ToggleActivation flips isActive. Deactivating the last active admin is
// refused so at least one active admin always exists.
func (h *UsersHandler) ToggleActivation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.Store.UserByID(r.Context(), id)
	if err != nil {
		storeError(w, err, "user")
		return
	}
	if user.IsActive && user.Role == models.RoleAdmin {
		count, err := h.Store.CountActiveAdmins(r.Context())
		if err != nil {
			serverError(w, err)
			return
		}
		if count <= 1 {
			fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "cannot deactivate the last active admin")
			return
		}
	}
	active := !user.IsActive
	if err := h.Store.UpdateUser(r.Context(), id, store.UserUpdate{IsActive: &active}); err != nil {
		storeError(w, err, "user")
		return
	}
	user.IsActive = active
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Approve marks a registered account as approved.
func (h *UsersHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.Store.UserByID(r.Context(), id)
	if err != nil {
		storeError(w, err, "user")
		return
	}
	approved := true
	if err := h.Store.UpdateUser(r.Context(), id, store.UserUpdate{IsApproved: &approved}); err != nil {
		storeError(w, err, "user")
		return
	}
	user.IsApproved = true
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// Delete removes a user. Self-deletion is refused, as is deleting the last
// active admin.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "MISSING_TOKEN", "authentication required")
		return
	}
	if current.ID == id {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "cannot delete your own account")
		return
	}
	user, err := h.Store.UserByID(r.Context(), id)
	if err != nil {
		storeError(w, err, "user")
		return
	}
	if user.Role == models.RoleAdmin && user.IsActive {
		count, err := h.Store.CountActiveAdmins(r.Context())
		if err != nil {
			serverError(w, err)
			return
		}
		if count <= 1 {
			fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "cannot delete the last active admin")
			return
		}
	}
	if err := h.Store.DeleteUser(r.Context(), id); err != nil {
		storeError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "user deleted"})
}
