// Package store defines the persistence interface for users, articles and
// videos, with interchangeable MongoDB and in-memory implementations.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/sada-news/backend/models"
)

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate is returned when a unique field (username, email)
	// collides with an existing document.
	ErrDuplicate = errors.New("store: duplicate entry")
)

// ArticleFilter narrows ListArticles. Zero values mean "no constraint".
type ArticleFilter struct {
	Status    string
	Category  string
	CreatedBy string
	Featured  *bool
	Trending  *bool
}

// VideoFilter narrows ListVideos. Zero values mean "no constraint".
type VideoFilter struct {
	Status    string
	Category  string
	Platform  string
	CreatedBy string
	Featured  *bool
	Trending  *bool
	Live      *bool
	Short     *bool
}

// UserUpdate carries partial user mutations; nil fields are left unchanged.
type UserUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Password    *string // bcrypt hash
	Role        *string
	Permissions *[]string
	IsActive    *bool
	IsApproved  *bool
}

// ArticleUpdate carries partial article mutations; nil fields are left unchanged.
type ArticleUpdate struct {
	Title       *models.LocalizedText
	Description *models.LocalizedText
	Content     *models.LocalizedText
	Slug        *string
	Category    *string
	ImageURL    *string
	Status      *string
	IsFeatured  *bool
	IsTrending  *bool
	ReadTime    *int
}

// VideoUpdate carries partial video mutations; nil fields are left unchanged.
type VideoUpdate struct {
	Title        *models.LocalizedText
	Description  *models.LocalizedText
	Platform     *string
	VideoURL     *string
	YouTubeID    *string
	Category     *string
	ThumbnailURL *string
	Status       *string
	IsFeatured   *bool
	IsTrending   *bool
	IsLive       *bool
	IsShort      *bool
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) (string, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	// UserByLogin looks a user up by exact username or email. Both fields
	// are stored lowercased; callers normalize case before lookup.
	UserByLogin(ctx context.Context, login string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, upd UserUpdate) error
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int64, error)
	CountActiveAdmins(ctx context.Context) (int64, error)
	// RecordLogin sets lastLogin and clears loginAttempts/lockUntil.
	RecordLogin(ctx context.Context, id string, at time.Time) error
	// IncrementLoginAttempts bumps the failed-login counter and returns the
	// new count.
	IncrementLoginAttempts(ctx context.Context, id string) (int, error)
	// LockUser locks the account until the given time and resets the counter.
	LockUser(ctx context.Context, id string, until time.Time) error
}

type ArticleStore interface {
	CreateArticle(ctx context.Context, a *models.Article) (string, error)
	ArticleByID(ctx context.Context, id string) (*models.Article, error)
	ListArticles(ctx context.Context, f ArticleFilter) ([]models.Article, error)
	UpdateArticle(ctx context.Context, id string, upd ArticleUpdate) error
	DeleteArticle(ctx context.Context, id string) error
	IncrementArticleViews(ctx context.Context, id string) error
	// AdjustArticleLikes adds delta to the like counter (floored at zero)
	// and returns the resulting count.
	AdjustArticleLikes(ctx context.Context, id string, delta int64) (int64, error)
	AddArticleComment(ctx context.Context, id string, c models.Comment) error
}

type VideoStore interface {
	CreateVideo(ctx context.Context, v *models.Video) (string, error)
	VideoByID(ctx context.Context, id string) (*models.Video, error)
	ListVideos(ctx context.Context, f VideoFilter) ([]models.Video, error)
	UpdateVideo(ctx context.Context, id string, upd VideoUpdate) error
	DeleteVideo(ctx context.Context, id string) error
	IncrementVideoViews(ctx context.Context, id string) error
	AdjustVideoLikes(ctx context.Context, id string, delta int64) (int64, error)
}

// Store is the full persistence surface handlers depend on.
type Store interface {
	UserStore
	ArticleStore
	VideoStore

	Close(ctx context.Context) error
}
