package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sada-news/backend/models"
)

// Memory implements Store with mutex-guarded maps. It backs local
// development and tests; nothing survives a restart.
type Memory struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	articles map[string]*models.Article
	videos   map[string]*models.Video
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]*models.User),
		articles: make(map[string]*models.Article),
		videos:   make(map[string]*models.Video),
	}
}

func (s *Memory) Close(ctx context.Context) error { return nil }

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Permissions = append([]string(nil), u.Permissions...)
	return &c
}

func cloneArticle(a *models.Article) *models.Article {
	c := *a
	c.Comments = append([]models.Comment(nil), a.Comments...)
	return &c
}

func cloneVideo(v *models.Video) *models.Video {
	c := *v
	return &c
}

// --- users ---

func (s *Memory) CreateUser(ctx context.Context, u *models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return "", ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = cloneUser(u)
	return u.ID, nil
}

func (s *Memory) UserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Memory) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == login || u.Email == login {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (s *Memory) UpdateUser(ctx context.Context, id string, upd UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	if upd.Email != nil {
		for otherID, other := range s.users {
			if otherID != id && other.Email == *upd.Email {
				return ErrDuplicate
			}
		}
		u.Email = *upd.Email
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Permissions != nil {
		u.Permissions = append([]string(nil), (*upd.Permissions)...)
	}
	if upd.IsActive != nil {
		u.IsActive = *upd.IsActive
	}
	if upd.IsApproved != nil {
		u.IsApproved = *upd.IsApproved
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (s *Memory) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *Memory) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *Memory) CountActiveAdmins(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, u := range s.users {
		if u.Role == models.RoleAdmin && u.IsActive {
			n++
		}
	}
	return n, nil
}

func (s *Memory) RecordLogin(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	t := at
	u.LastLogin = &t
	u.LoginAttempts = 0
	u.LockUntil = nil
	return nil
}

func (s *Memory) IncrementLoginAttempts(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return 0, ErrNotFound
	}
	u.LoginAttempts++
	return u.LoginAttempts, nil
}

func (s *Memory) LockUser(ctx context.Context, id string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	t := until
	u.LockUntil = &t
	u.LoginAttempts = 0
	return nil
}

// --- articles ---

func (s *Memory) CreateArticle(ctx context.Context, a *models.Article) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.articles[a.ID] = cloneArticle(a)
	return a.ID, nil
}

func (s *Memory) ArticleByID(ctx context.Context, id string) (*models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.articles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneArticle(a), nil
}

func articleMatches(a *models.Article, f ArticleFilter) bool {
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.CreatedBy != "" && a.CreatedBy != f.CreatedBy {
		return false
	}
	if f.Featured != nil && a.IsFeatured != *f.Featured {
		return false
	}
	if f.Trending != nil && a.IsTrending != *f.Trending {
		return false
	}
	return true
}

func (s *Memory) ListArticles(ctx context.Context, f ArticleFilter) ([]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	articles := make([]models.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if articleMatches(a, f) {
			articles = append(articles, *cloneArticle(a))
		}
	}
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].CreatedAt.After(articles[j].CreatedAt)
	})
	return articles, nil
}

func (s *Memory) UpdateArticle(ctx context.Context, id string, upd ArticleUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return ErrNotFound
	}
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.Content != nil {
		a.Content = *upd.Content
	}
	if upd.Slug != nil {
		a.Slug = *upd.Slug
	}
	if upd.Category != nil {
		a.Category = *upd.Category
	}
	if upd.ImageURL != nil {
		a.ImageURL = *upd.ImageURL
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.IsFeatured != nil {
		a.IsFeatured = *upd.IsFeatured
	}
	if upd.IsTrending != nil {
		a.IsTrending = *upd.IsTrending
	}
	if upd.ReadTime != nil {
		a.ReadTime = *upd.ReadTime
	}
	a.UpdatedAt = time.Now()
	return nil
}

func (s *Memory) DeleteArticle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[id]; !ok {
		return ErrNotFound
	}
	delete(s.articles, id)
	return nil
}

func (s *Memory) IncrementArticleViews(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return ErrNotFound
	}
	a.Views++
	return nil
}

func (s *Memory) AdjustArticleLikes(ctx context.Context, id string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return 0, ErrNotFound
	}
	a.Likes += delta
	if a.Likes < 0 {
		a.Likes = 0
	}
	return a.Likes, nil
}

func (s *Memory) AddArticleComment(ctx context.Context, id string, c models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return ErrNotFound
	}
	a.Comments = append(a.Comments, c)
	a.UpdatedAt = time.Now()
	return nil
}

// --- videos ---

func (s *Memory) CreateVideo(ctx context.Context, v *models.Video) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	s.videos[v.ID] = cloneVideo(v)
	return v.ID, nil
}

func (s *Memory) VideoByID(ctx context.Context, id string) (*models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneVideo(v), nil
}

func videoMatches(v *models.Video, f VideoFilter) bool {
	if f.Status != "" && v.Status != f.Status {
		return false
	}
	if f.Category != "" && v.Category != f.Category {
		return false
	}
	if f.Platform != "" && v.Platform != f.Platform {
		return false
	}
	if f.CreatedBy != "" && v.CreatedBy != f.CreatedBy {
		return false
	}
	if f.Featured != nil && v.IsFeatured != *f.Featured {
		return false
	}
	if f.Trending != nil && v.IsTrending != *f.Trending {
		return false
	}
	if f.Live != nil && v.IsLive != *f.Live {
		return false
	}
	if f.Short != nil && v.IsShort != *f.Short {
		return false
	}
	return true
}

func (s *Memory) ListVideos(ctx context.Context, f VideoFilter) ([]models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	videos := make([]models.Video, 0, len(s.videos))
	for _, v := range s.videos {
		if videoMatches(v, f) {
			videos = append(videos, *cloneVideo(v))
		}
	}
	sort.Slice(videos, func(i, j int) bool {
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})
	return videos, nil
}

func (s *Memory) UpdateVideo(ctx context.Context, id string, upd VideoUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return ErrNotFound
	}
	if upd.Title != nil {
		v.Title = *upd.Title
	}
	if upd.Description != nil {
		v.Description = *upd.Description
	}
	if upd.Platform != nil {
		v.Platform = *upd.Platform
	}
	if upd.VideoURL != nil {
		v.VideoURL = *upd.VideoURL
	}
	if upd.YouTubeID != nil {
		v.YouTubeID = *upd.YouTubeID
	}
	if upd.Category != nil {
		v.Category = *upd.Category
	}
	if upd.ThumbnailURL != nil {
		v.ThumbnailURL = *upd.ThumbnailURL
	}
	if upd.Status != nil {
		v.Status = *upd.Status
	}
	if upd.IsFeatured != nil {
		v.IsFeatured = *upd.IsFeatured
	}
	if upd.IsTrending != nil {
		v.IsTrending = *upd.IsTrending
	}
	if upd.IsLive != nil {
		v.IsLive = *upd.IsLive
	}
	if upd.IsShort != nil {
		v.IsShort = *upd.IsShort
	}
	v.UpdatedAt = time.Now()
	return nil
}

func (s *Memory) DeleteVideo(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[id]; !ok {
		return ErrNotFound
	}
	delete(s.videos, id)
	return nil
}

func (s *Memory) IncrementVideoViews(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return ErrNotFound
	}
	v.Views++
	return nil
}

func (s *Memory) AdjustVideoLikes(ctx context.Context, id string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return 0, ErrNotFound
	}
	v.Likes += delta
	if v.Likes < 0 {
		v.Likes = 0
	}
	return v.Likes, nil
}
