package handlers

import (
	"net/http"
	"strings"

	"github.com/sada-news/backend/models"
	"github.com/sada-news/backend/store"
	"github.com/sada-news/backend/utils"
)

// SearchHandler implements GET /api/search?q=&type=&lang=&category=&sort=
// over published articles and videos. Matching is a substring check on the
// title/description resolved for the requested language.
type SearchHandler struct {
	Store store.Store
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	typ := r.URL.Query().Get("type")
	sortBy := r.URL.Query().Get("sort")
	lang := utils.NormalizeLang(r.URL.Query().Get("lang"))
	category := r.URL.Query().Get("category")
	featured := parseBoolParam(r, "featured")
	trending := parseBoolParam(r, "trending")

	body := map[string]any{"lang": lang}

	if typ == "" || typ == "article" || typ == "articles" {
		articles, err := h.Store.ListArticles(r.Context(), store.ArticleFilter{
			Status:   models.StatusPublished,
			Category: category,
			Featured: featured,
			Trending: trending,
		})
		if err != nil {
			serverError(w, err)
			return
		}
		articles = utils.FilterArticles(articles, q, lang)
		utils.SortArticles(articles, sortBy)
		body["articles"] = articles
	}
	if typ == "" || typ == "video" || typ == "videos" {
		videos, err := h.Store.ListVideos(r.Context(), store.VideoFilter{
			Status:   models.StatusPublished,
			Category: category,
			Featured: featured,
			Trending: trending,
		})
		if err != nil {
			serverError(w, err)
			return
		}
		videos = utils.FilterVideos(videos, q, lang)
		utils.SortVideos(videos, sortBy)
		body["videos"] = videos
	}
	writeJSON(w, http.StatusOK, body)
}
