// Package middleware provides HTTP middleware for authentication,
// authorization, CORS and login rate limiting.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sada-news/backend/models"
	"github.com/sada-news/backend/store"
)

type contextKey string

const userKey contextKey = "user"

// Claims is the JWT payload. Username and role ride along for clients;
// authorization always re-checks the stored user record.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// fail writes the standard failure envelope. Lives here (rather than in
// handlers) to avoid an import cycle.
func fail(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprintf(w, `{"success":false,"message":%q,"code":%q}`, message, code)
}

// Auth verifies the Bearer token, loads the user from the store and
// attaches it to the request context. Deactivated users and unapproved
// non-admins are rejected even with a valid token.
func Auth(jwtSecret string, users store.UserStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				fail(w, http.StatusUnauthorized, "MISSING_TOKEN", "authorization header required")
				return
			}
			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				fail(w, http.StatusUnauthorized, "INVALID_TOKEN", "authorization header must be a Bearer token")
				return
			}
			token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(t *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					fail(w, http.StatusUnauthorized, "TOKEN_EXPIRED", "token has expired")
					return
				}
				fail(w, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token")
				return
			}
			claims, ok := token.Claims.(*Claims)
			if !ok || claims.UserID == "" {
				fail(w, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token")
				return
			}
			user, err := users.UserByID(r.Context(), claims.UserID)
			if err != nil {
				fail(w, http.StatusUnauthorized, "USER_NOT_FOUND", "user no longer exists")
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
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose authenticated user holds none of the
// allowed roles. Must run after Auth.
func RequireRole(roles ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				fail(w, http.StatusUnauthorized, "MISSING_TOKEN", "authentication required")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			fail(w, http.StatusForbidden, "FORBIDDEN", "insufficient role")
		})
	}
}

// UserFromContext returns the authenticated user attached by Auth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

// ContextWithUser is used by handler tests to inject an authenticated user.
func ContextWithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// NewToken issues a signed HS256 token for the user.
func NewToken(secret string, u *models.User, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
