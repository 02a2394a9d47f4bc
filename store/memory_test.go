package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sada-news/backend/models"
)

func newTestUser(username string) *models.User {
	now := time.Now()
	return &models.User{
		Username:   username,
		Email:      username + "@example.com",
		Password:   "hash",
		Role:       models.RoleEditor,
		IsActive:   true,
		IsApproved: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestMemoryUserCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	id, err := s.CreateUser(ctx, newTestUser("alice"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	u, err := s.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	// Lookup works by username and by email. Matching is exact, like the
	// unique-indexed Mongo lookup; callers lowercase before calling.
	u, err = s.UserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	u, err = s.UserByLogin(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	_, err = s.UserByLogin(ctx, "ALICE")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.UserByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	// Duplicate username rejected.
	_, err = s.CreateUser(ctx, newTestUser("alice"))
	assert.ErrorIs(t, err, ErrDuplicate)

	role := models.RoleViewer
	require.NoError(t, s.UpdateUser(ctx, id, UserUpdate{Role: &role}))
	u, err = s.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.RoleViewer, u.Role)

	require.NoError(t, s.DeleteUser(ctx, id))
	_, err = s.UserByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteUser(ctx, id), ErrNotFound)
}

func TestMemoryLoginBookkeeping(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	id, err := s.CreateUser(ctx, newTestUser("bob"))
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		n, err := s.IncrementLoginAttempts(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	until := time.Now().Add(2 * time.Hour)
	require.NoError(t, s.LockUser(ctx, id, until))
	u, err := s.UserByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, u.Locked(time.Now()))
	assert.Zero(t, u.LoginAttempts)

	// A successful login clears the lock and stamps lastLogin.
	at := time.Now()
	require.NoError(t, s.RecordLogin(ctx, id, at))
	u, err = s.UserByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, u.Locked(time.Now()))
	require.NotNil(t, u.LastLogin)
	assert.WithinDuration(t, at, *u.LastLogin, time.Second)
}

func TestMemoryCountActiveAdmins(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	admin := newTestUser("root")
	admin.Role = models.RoleAdmin
	id, err := s.CreateUser(ctx, admin)
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, newTestUser("carol"))
	require.NoError(t, err)

	n, err := s.CountActiveAdmins(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	inactive := false
	require.NoError(t, s.UpdateUser(ctx, id, UserUpdate{IsActive: &inactive}))
	n, err = s.CountActiveAdmins(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func newTestArticle(title string, status string) *models.Article {
	now := time.Now()
	return &models.Article{
		Title:     models.LocalizedText{En: title},
		Category:  models.CategoryTechnology,
		Status:    status,
		CreatedBy: "u1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestMemoryArticleCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	id, err := s.CreateArticle(ctx, newTestArticle("T", models.StatusPublished))
	require.NoError(t, err)

	a, err := s.ArticleByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "T", a.Title.En)

	_, err = s.ArticleByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	status := models.StatusDraft
	require.NoError(t, s.UpdateArticle(ctx, id, ArticleUpdate{Status: &status}))
	a, err = s.ArticleByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, a.Status)

	require.NoError(t, s.DeleteArticle(ctx, id))
	assert.ErrorIs(t, s.DeleteArticle(ctx, id), ErrNotFound)
}

func TestMemoryArticleFilters(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	published := newTestArticle("pub", models.StatusPublished)
	published.IsTrending = true
	_, err := s.CreateArticle(ctx, published)
	require.NoError(t, err)
	_, err = s.CreateArticle(ctx, newTestArticle("draft", models.StatusDraft))
	require.NoError(t, err)

	list, err := s.ListArticles(ctx, ArticleFilter{Status: models.StatusPublished})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "pub", list[0].Title.En)

	trending := true
	list, err = s.ListArticles(ctx, ArticleFilter{Trending: &trending})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	notTrending := false
	list, err = s.ListArticles(ctx, ArticleFilter{Trending: &notTrending})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "draft", list[0].Title.En)
}

func TestMemoryArticleCounters(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	id, err := s.CreateArticle(ctx, newTestArticle("T", models.StatusPublished))
	require.NoError(t, err)

	// Liking N times counts N; no deduplication.
	for i := int64(1); i <= 3; i++ {
		likes, err := s.AdjustArticleLikes(ctx, id, 1)
		require.NoError(t, err)
		assert.Equal(t, i, likes)
	}
	// Unlike floors at zero.
	for i := 0; i < 5; i++ {
		_, err := s.AdjustArticleLikes(ctx, id, -1)
		require.NoError(t, err)
	}
	likes, err := s.AdjustArticleLikes(ctx, id, -1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, likes)

	require.NoError(t, s.IncrementArticleViews(ctx, id))
	require.NoError(t, s.IncrementArticleViews(ctx, id))
	a, err := s.ArticleByID(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, 2, a.Views)

	_, err = s.AdjustArticleLikes(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryArticleComments(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	id, err := s.CreateArticle(ctx, newTestArticle("T", models.StatusPublished))
	require.NoError(t, err)

	c := models.Comment{ID: "c1", Text: "great read", User: "reader", Timestamp: time.Now()}
	require.NoError(t, s.AddArticleComment(ctx, id, c))

	a, err := s.ArticleByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, a.Comments, 1)
	assert.Equal(t, "great read", a.Comments[0].Text)

	assert.ErrorIs(t, s.AddArticleComment(ctx, "missing", c), ErrNotFound)
}

func TestMemoryVideoCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	now := time.Now()
	id, err := s.CreateVideo(ctx, &models.Video{
		Title:     models.LocalizedText{En: "clip"},
		Platform:  models.PlatformYouTube,
		VideoURL:  "https://youtu.be/dQw4w9WgXcQ",
		Category:  models.CategorySports,
		Status:    models.StatusPublished,
		IsShort:   true,
		CreatedBy: "u1",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)

	short := true
	list, err := s.ListVideos(ctx, VideoFilter{Short: &short})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	live := true
	list, err = s.ListVideos(ctx, VideoFilter{Live: &live})
	require.NoError(t, err)
	assert.Empty(t, list)

	likes, err := s.AdjustVideoLikes(ctx, id, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, likes)
	likes, err = s.AdjustVideoLikes(ctx, id, -5)
	require.NoError(t, err)
	assert.EqualValues(t, 0, likes)

	require.NoError(t, s.DeleteVideo(ctx, id))
	_, err = s.VideoByID(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

// Mutating a returned copy must not leak into the store.
func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	id, err := s.CreateArticle(ctx, newTestArticle("T", models.StatusPublished))
	require.NoError(t, err)

	a, err := s.ArticleByID(ctx, id)
	require.NoError(t, err)
	a.Title.En = "mutated"
	a.Comments = append(a.Comments, models.Comment{ID: "x"})

	fresh, err := s.ArticleByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "T", fresh.Title.En)
	assert.Empty(t, fresh.Comments)
}
