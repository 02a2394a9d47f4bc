package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sada-news/backend/cache"
	"github.com/sada-news/backend/middleware"
	"github.com/sada-news/backend/models"
	"github.com/sada-news/backend/store"
)

const (
	testSecret   = "test-secret"
	testPassword = "password123"
)

// fakeMedia stands in for the S3 service and records deleted keys.
type fakeMedia struct {
	uploaded []string
	deleted  []string
}

const fakeMediaPrefix = "https://media.test/"

func (f *fakeMedia) Upload(_ context.Context, prefix, originalFilename string, _ io.Reader, _ string) (string, error) {
	key := prefix + originalFilename
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeMedia) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeMedia) PublicURL(key string) string { return fakeMediaPrefix + key }

func (f *fakeMedia) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, fakeMediaPrefix) || len(url) == len(fakeMediaPrefix) {
		return "", false
	}
	return url[len(fakeMediaPrefix):], true
}

// testApp wires the handlers over the in-memory store the way main does,
// so tests exercise the real routing and middleware stack.
type testApp struct {
	store  *store.Memory
	media  *fakeMedia
	router *chi.Mux
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	s := store.NewMemory()
	c := cache.NewMemory(time.Minute)
	t.Cleanup(func() { c.Close() })

	media := &fakeMedia{}
	authHandler := &AuthHandler{Store: s, JWTSecret: testSecret, TokenTTL: time.Hour}
	articlesHandler := &ArticlesHandler{Store: s, Cache: c, CacheTTL: time.Minute, Media: media}
	videosHandler := &VideosHandler{Store: s, Cache: c, CacheTTL: time.Minute, Media: media}
	usersHandler := &UsersHandler{Store: s}
	searchHandler := &SearchHandler{Store: s}
	uploadHandler := &UploadHandler{S3: media, MaxBytes: 1 << 20}
	authed := middleware.Auth(testSecret, s)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/register", authHandler.Register)

		r.Get("/articles", articlesHandler.List)
		r.Get("/articles/{id}", articlesHandler.Get)
		r.Post("/articles/{id}/like", articlesHandler.Like)
		r.Post("/articles/{id}/unlike", articlesHandler.Unlike)
		r.Post("/articles/{id}/comments", articlesHandler.AddComment)
		r.Get("/videos", videosHandler.List)
		r.Get("/videos/{id}", videosHandler.Get)
		r.Post("/videos/{id}/like", videosHandler.Like)
		r.Post("/videos/{id}/unlike", videosHandler.Unlike)
		r.Get("/search", searchHandler.Search)

		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Get("/auth/me", authHandler.Me)
			r.Post("/articles", articlesHandler.Create)
			r.Put("/articles/{id}", articlesHandler.Update)
			r.Delete("/articles/{id}", articlesHandler.Delete)
			r.Post("/videos", videosHandler.Create)
			r.Put("/videos/{id}", videosHandler.Update)
			r.Delete("/videos/{id}", videosHandler.Delete)
			r.Post("/upload", uploadHandler.Upload)
		})

		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/admin/users", usersHandler.List)
			r.Post("/admin/users", usersHandler.Create)
			r.Patch("/admin/users/{id}/toggle-activation", usersHandler.ToggleActivation)
			r.Patch("/admin/users/{id}/approve", usersHandler.Approve)
			r.Delete("/admin/users/{id}", usersHandler.Delete)
		})
	})

	return &testApp{store: s, media: media, router: r}
}

// user seeds an active, approved user with the shared test password.
func (a *testApp) user(t *testing.T, username, role string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	u := &models.User{
		Username:   username,
		Email:      username + "@example.com",
		Password:   string(hash),
		Role:       role,
		IsActive:   true,
		IsApproved: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	id, err := a.store.CreateUser(context.Background(), u)
	require.NoError(t, err)
	u.ID = id
	return u
}

func (a *testApp) token(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := middleware.NewToken(testSecret, u, time.Hour)
	require.NoError(t, err)
	return token
}

// do performs a request against the test router. body is JSON-encoded
// when non-nil; token (if set) rides in the Authorization header.
func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// sub walks into a nested object in a decoded response.
func sub(t *testing.T, body map[string]any, key string) map[string]any {
	t.Helper()
	inner, ok := body[key].(map[string]any)
	require.True(t, ok, "expected %q object in response", key)
	return inner
}
