package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sada-news/backend/cache"
	"github.com/sada-news/backend/middleware"
	"github.com/sada-news/backend/models"
	"github.com/sada-news/backend/store"
	"github.com/sada-news/backend/utils"
)

const videosCacheKey = "videos:published"

type VideosHandler struct {
	Store    store.Store
	Cache    cache.Cache
	CacheTTL time.Duration
	Media    MediaStore
}

// removeMedia deletes a bucket-owned thumbnail. Derived YouTube thumbnails
// and other external URLs are left alone.
func (h *VideosHandler) removeMedia(r *http.Request, url string) {
	if h.Media == nil || url == "" {
		return
	}
	key, ok := h.Media.KeyFromURL(url)
	if !ok {
		return
	}
	if err := h.Media.Delete(r.Context(), key); err != nil {
		log.Println("video thumbnail delete:", err)
	}
}

func (h *VideosHandler) invalidate(r *http.Request) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Delete(r.Context(), videosCacheKey); err != nil {
		log.Println("video cache invalidate:", err)
	}
}

// List returns published videos with optional category/platform/flag filters.
func (h *VideosHandler) List(w http.ResponseWriter, r *http.Request) {
	f := store.VideoFilter{
		Status:   models.StatusPublished,
		Category: r.URL.Query().Get("category"),
		Platform: r.URL.Query().Get("platform"),
		Featured: parseBoolParam(r, "featured"),
		Trending: parseBoolParam(r, "trending"),
		Live:     parseBoolParam(r, "live"),
		Short:    parseBoolParam(r, "short"),
	}
	unfiltered := f.Category == "" && f.Platform == "" && f.Featured == nil &&
		f.Trending == nil && f.Live == nil && f.Short == nil

	if unfiltered && h.Cache != nil {
		if data, err := h.Cache.Get(r.Context(), videosCacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(data)
			return
		}
	}

	videos, err := h.Store.ListVideos(r.Context(), f)
	if err != nil {
		serverError(w, err)
		return
	}
	body := map[string]any{"success": true, "videos": videos}
	if unfiltered && h.Cache != nil {
		if data, err := json.Marshal(body); err == nil {
			if err := h.Cache.Set(r.Context(), videosCacheKey, data, h.CacheTTL); err != nil {
				log.Println("video cache set:", err)
			}
		}
	}
	writeJSON(w, http.StatusOK, body)
}

// Get returns one video and counts the view.
func (h *VideosHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.IncrementVideoViews(r.Context(), id); err != nil {
		storeError(w, err, "video")
		return
	}
	video, err := h.Store.VideoByID(r.Context(), id)
	if err != nil {
		storeError(w, err, "video")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"video": video})
}

type VideoRequest struct {
	Title        models.LocalizedText `json:"title"`
	Description  models.LocalizedText `json:"description"`
	Platform     string               `json:"platform"`
	VideoURL     string               `json:"videoUrl"`
	Category     string               `json:"category"`
	ThumbnailURL string               `json:"thumbnailUrl"`
	Status       string               `json:"status"`
	IsFeatured   bool                 `json:"isFeatured"`
	IsTrending   bool                 `json:"isTrending"`
	IsLive       bool                 `json:"isLive"`
	IsShort      bool                 `json:"isShort"`
}

// Create stores a new video owned by the authenticated user. YouTube URLs
// get their video id extracted and a default thumbnail derived from it.
func (h *VideosHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "MISSING_TOKEN", "authentication required")
		return
	}
	var req VideoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title.Empty() {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "title is required in at least one language")
		return
	}
	if req.VideoURL == "" {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "videoUrl is required")
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

	youtubeID := utils.YouTubeID(req.VideoURL)
	if req.Platform == "" {
		if youtubeID != "" {
			req.Platform = models.PlatformYouTube
		} else {
			req.Platform = models.PlatformOther
		}
	}
	if !models.PlatformValid(req.Platform) {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid platform")
		return
	}
	thumbnail := req.ThumbnailURL
	if thumbnail == "" {
		thumbnail = utils.YouTubeThumbnail(youtubeID)
	}

	now := time.Now()
	video := &models.Video{
		Title:             req.Title,
		Description:       req.Description,
		Platform:          req.Platform,
		VideoURL:          req.VideoURL,
		YouTubeID:         youtubeID,
		Category:          req.Category,
		ThumbnailURL:      thumbnail,
		Status:            req.Status,
		IsFeatured:        req.IsFeatured,
		IsTrending:        req.IsTrending,
		IsLive:            req.IsLive,
		IsShort:           req.IsShort,
		CreatedBy:         user.ID,
		CreatedByUsername: user.Username,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := h.Store.CreateVideo(r.Context(), video); err != nil {
		storeError(w, err, "video")
		return
	}
	h.invalidate(r)
	writeJSON(w, http.StatusOK, map[string]any{"video": video})
}

type VideoUpdateRequest struct {
	Title        *models.LocalizedText `json:"title"`
	Description  *models.LocalizedText `json:"description"`
	Platform     *string               `json:"platform"`
	VideoURL     *string               `json:"videoUrl"`
	Category     *string               `json:"category"`
	ThumbnailURL *string               `json:"thumbnailUrl"`
	Status       *string               `json:"status"`
	IsFeatured   *bool                 `json:"isFeatured"`
	IsTrending   *bool                 `json:"isTrending"`
	IsLive       *bool                 `json:"isLive"`
	IsShort      *bool                 `json:"isShort"`
}

func (h *VideosHandler) requireOwnedVideo(w http.ResponseWriter, r *http.Request) (*models.Video, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, "MISSING_TOKEN", "authentication required")
		return nil, false
	}
	video, err := h.Store.VideoByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err, "video")
		return nil, false
	}
	if video.CreatedBy != user.ID {
		fail(w, http.StatusForbidden, "FORBIDDEN", "only the creator can modify this video")
		return nil, false
	}
	return video, true
}

// Update mutates a video owned by the requester.
func (h *VideosHandler) Update(w http.ResponseWriter, r *http.Request) {
	video, ok := h.requireOwnedVideo(w, r)
	if !ok {
		return
	}
	var req VideoUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Category != nil && !models.CategoryValid(*req.Category) {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid category")
		return
	}
	if req.Platform != nil && !models.PlatformValid(*req.Platform) {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid platform")
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
	upd := store.VideoUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Platform:     req.Platform,
		VideoURL:     req.VideoURL,
		Category:     req.Category,
		ThumbnailURL: req.ThumbnailURL,
		Status:       req.Status,
		IsFeatured:   req.IsFeatured,
		IsTrending:   req.IsTrending,
		IsLive:       req.IsLive,
		IsShort:      req.IsShort,
	}
	if req.VideoURL != nil {
		// Keep the extracted id in sync with the URL, and rederive the
		// thumbnail when the stored one was auto-generated.
		id := utils.YouTubeID(*req.VideoURL)
		upd.YouTubeID = &id
		if req.ThumbnailURL == nil && video.ThumbnailURL == utils.YouTubeThumbnail(video.YouTubeID) {
			thumb := utils.YouTubeThumbnail(id)
			upd.ThumbnailURL = &thumb
		}
	}
	if err := h.Store.UpdateVideo(r.Context(), video.ID, upd); err != nil {
		storeError(w, err, "video")
		return
	}
	updated, err := h.Store.VideoByID(r.Context(), video.ID)
	if err != nil {
		storeError(w, err, "video")
		return
	}
	h.invalidate(r)
	writeJSON(w, http.StatusOK, map[string]any{"video": updated})
}

// Delete removes a video owned by the requester.
func (h *VideosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	video, ok := h.requireOwnedVideo(w, r)
	if !ok {
		return
	}
	if err := h.Store.DeleteVideo(r.Context(), video.ID); err != nil {
		storeError(w, err, "video")
		return
	}
	h.removeMedia(r, video.ThumbnailURL)
	h.invalidate(r)
	writeJSON(w, http.StatusOK, map[string]any{"message": "video deleted"})
}

// Like bumps the like counter; no per-user deduplication.
func (h *VideosHandler) Like(w http.ResponseWriter, r *http.Request) {
	likes, err := h.Store.AdjustVideoLikes(r.Context(), chi.URLParam(r, "id"), 1)
	if err != nil {
		storeError(w, err, "video")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"likes": likes})
}

// Unlike decrements the like counter, never below zero.
func (h *VideosHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	likes, err := h.Store.AdjustVideoLikes(r.Context(), chi.URLParam(r, "id"), -1)
	if err != nil {
		storeError(w, err, "video")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"likes": likes})
}
