package handlers

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sada-news/backend/middleware"
	"github.com/sada-news/backend/models"
	"github.com/sada-news/backend/store"
)

type AuthHandler struct {
	Store     store.Store
	JWTSecret string
	TokenTTL  time.Duration
}

type LoginRequest struct {
	Username string `json:"username"` // username or email
	Password string `json:"password"`
}

// Login checks credentials, applies the account lockout policy and issues
// a JWT. Five failed attempts lock the account for two hours.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	// Usernames and emails are stored lowercased; accept any casing here.
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "username and password required")
		return
	}

	user, err := h.Store.UserByLogin(r.Context(), req.Username)
	if err == store.ErrNotFound {
		fail(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	now := time.Now()
	if user.Locked(now) {
		fail(w, http.StatusLocked, "ACCOUNT_LOCKED", "account is temporarily locked, try again later")
		return
	}
	if !user.IsActive {
		fail(w, http.StatusUnauthorized, "ACCOUNT_DEACTIVATED", "account has been deactivated")
		return
	}
	if !user.IsApproved && user.Role != models.RoleAdmin {
		fail(w, http.StatusUnauthorized, "ACCOUNT_NOT_APPROVED", "account is awaiting approval")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		attempts, incErr := h.Store.IncrementLoginAttempts(r.Context(), user.ID)
		if incErr == nil && attempts >= models.MaxLoginAttempts {
			if lockErr := h.Store.LockUser(r.Context(), user.ID, now.Add(models.LockDuration)); lockErr == nil {
				fail(w, http.StatusLocked, "ACCOUNT_LOCKED", "too many failed attempts, account locked")
				return
			}
		}
		fail(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
		return
	}

	if err := h.Store.RecordLogin(r.Context(), user.ID, now); err != nil {
		serverError(w, err)
		return
	}
	user.LastLogin = &now

	token, err := middleware.NewToken(h.JWTSecret, user, h.TokenTTL)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register creates a viewer account that stays unusable until an admin
// approves it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(strings.ToLower(req.Username))
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "username, email and password required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid email address")
		return
	}
	if len(req.Password) < 6 {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(w, err)
		return
	}
	now := time.Now()
	user := &models.User{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hash),
		Role:       models.RoleViewer,
		IsActive:   true,
		IsApproved: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := h.Store.CreateUser(r.Context(), user); err != nil {
		storeError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "registration received, awaiting approval",
		"user":    user,
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "MISSING_TOKEN", "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
