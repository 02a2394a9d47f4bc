package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sada-news/backend/cache"
	"github.com/sada-news/backend/middleware"
	"github.com/sada-news/backend/models"
	"github.com/sada-news/backend/store"
	"github.com/sada-news/backend/utils"
)

const articlesCacheKey = "articles:published"

type ArticlesHandler struct {
	Store    store.Store
	Cache    cache.Cache
	CacheTTL time.Duration
	Media    MediaStore
}

// removeMedia deletes a bucket-owned object referenced by url. External
// URLs are left alone.
func (h *ArticlesHandler) removeMedia(r *http.Request, url string) {
	if h.Media == nil || url == "" {
		return
	}
	key, ok := h.Media.KeyFromURL(url)
	if !ok {
		return
	}
	if err := h.Media.Delete(r.Context(), key); err != nil {
		log.Println("article image delete:", err)
	}
}

// invalidate drops the cached published list after any article mutation.
func (h *ArticlesHandler) invalidate(r *http.Request) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Delete(r.Context(), articlesCacheKey); err != nil {
		log.Println("article cache invalidate:", err)
	}
}

func parseBoolParam(r *http.Request, name string) *bool {
	switch r.URL.Query().Get(name) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

// List returns published articles, optionally filtered by category,
// featured and trending. The unfiltered list is served from cache.
func (h *ArticlesHandler) List(w http.ResponseWriter, r *http.Request) {
	f := store.ArticleFilter{
		Status:   models.StatusPublished,
		Category: r.URL.Query().Get("category"),
		Featured: parseBoolParam(r, "featured"),
		Trending: parseBoolParam(r, "trending"),
	}
	unfiltered := f.Category == "" && f.Featured == nil && f.Trending == nil

	if unfiltered && h.Cache != nil {
		if data, err := h.Cache.Get(r.Context(), articlesCacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(data)
			return
		}
	}

	articles, err := h.Store.ListArticles(r.Context(), f)
	if err != nil {
		serverError(w, err)
		return
	}
	body := map[string]any{"success": true, "articles": articles}
	if unfiltered && h.Cache != nil {
		if data, err := json.Marshal(body); err == nil {
			if err := h.Cache.Set(r.Context(), articlesCacheKey, data, h.CacheTTL); err != nil {
				log.Println("article cache set:", err)
			}
		}
	}
	writeJSON(w, http.StatusOK, body)
}

// Get returns one article and counts the view.
func (h *ArticlesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.IncrementArticleViews(r.Context(), id); err != nil {
		storeError(w, err, "article")
		return
	}
	article, err := h.Store.ArticleByID(r.Context(), id)
	if err != nil {
		storeError(w, err, "article")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"article": article})
}

type ArticleRequest struct {
	Title       models.LocalizedText `json:"title"`
	Description models.LocalizedText `json:"description"`
	Content     models.LocalizedText `json:"content"`
	Category    string               `json:"category"`
	ImageURL    string               `json:"imageUrl"`
	Status      string               `json:"status"`
	IsFeatured  bool                 `json:"isFeatured"`
	IsTrending  bool                 `json:"isTrending"`
	ReadTime    int                  `json:"readTime"`
}

// Create stores a new article owned by the authenticated user.
func (h *ArticlesHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "MISSING_TOKEN", "authentication required")
		return
	}
	var req ArticleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title.Empty() {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "title is required in at least one language")
		return
	}
	if !models.CategoryValid(req.Category) {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid category")
		return
	}
	if req.Status == "" {
		req.Status = models.StatusDraft
	}
	if !models.StatusValid(req.Status) {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "status must be draft or published")
		return
	}

	content := utils.SanitizeLocalized(req.Content)
	readTime := req.ReadTime
	if readTime <= 0 {
		readTime = utils.EstimateReadTime(content)
	}
	now := time.Now()
	article := &models.Article{
		Title:             req.Title,
		Description:       req.Description,
		Content:           content,
		Slug:              utils.Slugify(req.Title.Resolve(models.LangEnglish)),
		Category:          req.Category,
		ImageURL:          req.ImageURL,
		Status:            req.Status,
		IsFeatured:        req.IsFeatured,
		IsTrending:        req.IsTrending,
		Comments:          []models.Comment{},
		ReadTime:          readTime,
		CreatedBy:         user.ID,
		CreatedByUsername: user.Username,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	id, err := h.Store.CreateArticle(r.Context(), article)
	if err != nil {
		storeError(w, err, "article")
		return
	}
	// Articles without a Latin title fall back to the id as their slug;
	// the response only claims the slug once it is persisted.
	if article.Slug == "" {
		if err := h.Store.UpdateArticle(r.Context(), id, store.ArticleUpdate{Slug: &id}); err != nil {
			log.Println("article slug update:", err)
		} else {
			article.Slug = id
		}
	}
	h.invalidate(r)
	writeJSON(w, http.StatusOK, map[string]any{"article": article})
}

type ArticleUpdateRequest struct {
	Title       *models.LocalizedText `json:"title"`
	Description *models.LocalizedText `json:"description"`
	Content     *models.LocalizedText `json:"content"`
	Category    *string               `json:"category"`
	ImageURL    *string               `json:"imageUrl"`
	Status      *string               `json:"status"`
	IsFeatured  *bool                 `json:"isFeatured"`
	IsTrending  *bool                 `json:"isTrending"`
	ReadTime    *int                  `json:"readTime"`
}

// requireOwnedArticle loads the article and enforces the ownership rule:
// only the creator may mutate it.
func (h *ArticlesHandler) requireOwnedArticle(w http.ResponseWriter, r *http.Request) (*models.Article, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "MISSING_TOKEN", "authentication required")
		return nil, false
	}
	article, err := h.Store.ArticleByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "article")
		return nil, false
	}
	if article.CreatedBy != user.ID {
		fail(w, http.StatusForbidden, "FORBIDDEN", "only the creator can modify this article")
		return nil, false
	}
	return article, true
}

// Update mutates an article owned by the requester.
func (h *ArticlesHandler) Update(w http.ResponseWriter, r *http.Request) {
	article, ok := h.requireOwnedArticle(w, r)
	if !ok {
		return
	}
	var req ArticleUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Category != nil && !models.CategoryValid(*req.Category) {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid category")
		return
	}
	if req.Status != nil && !models.StatusValid(*req.Status) {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "status must be draft or published")
		return
	}
	if req.Title != nil && req.Title.Empty() {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "title cannot be empty")
		return
	}
	upd := store.ArticleUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Status:      req.Status,
		IsFeatured:  req.IsFeatured,
		IsTrending:  req.IsTrending,
		ReadTime:    req.ReadTime,
	}
	if req.Content != nil {
		clean := utils.SanitizeLocalized(*req.Content)
		upd.Content = &clean
	}
	if err := h.Store.UpdateArticle(r.Context(), article.ID, upd); err != nil {
		storeError(w, err, "article")
		return
	}
	updated, err := h.Store.ArticleByID(r.Context(), article.ID)
	if err != nil {
		storeError(w, err, "article")
		return
	}
	h.invalidate(r)
	writeJSON(w, http.StatusOK, map[string]any{"article": updated})
}

// Delete removes an article owned by the requester.
func (h *ArticlesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	article, ok := h.requireOwnedArticle(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteArticle(r.Context(), article.ID); err != nil {
		storeError(w, err, "article")
		return
	}
	h.removeMedia(r, article.ImageURL)
	h.invalidate(r)
	writeJSON(w, http.StatusOK, map[string]any{"message": "article deleted"})
}

// Like bumps the like counter. Repeated calls keep counting; there is no
// per-user deduplication.
func (h *ArticlesHandler) Like(w http.ResponseWriter, r *http.Request) {
	likes, err := h.Store.AdjustArticleLikes(r.Context(), chi.URLParam(r, "id"), 1)
	if err != nil {
		storeError(w, err, "article")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"likes": likes})
}

// Unlike decrements the like counter, never below zero.
func (h *ArticlesHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	likes, err := h.Store.AdjustArticleLikes(r.Context(), chi.URLParam(r, "id"), -1)
	if err != nil {
		storeError(w, err, "article")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"likes": likes})
}

type CommentRequest struct {
	Text string `json:"text"`
	User string `json:"user"`
}

// AddComment appends a comment. Comments are open to the public; the user
// field is just a display name.
func (h *ArticlesHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	text := utils.SanitizePlain(req.Text)
	if text == "" {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "comment text is required")
		return
	}
	name := utils.SanitizePlain(req.User)
	if name == "" {
		name = "anonymous"
	}
	comment := models.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		User:      name,
		Timestamp: time.Now(),
	}
	if err := h.Store.AddArticleComment(r.Context(), chi.URLParam(r, "id"), comment); err != nil {
		storeError(w, err, "article")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"comment": comment})
}
