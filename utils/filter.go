package utils

import (
	"sort"
	"strings"

	"github.com/sada-news/backend/models"
)

// Sort orders accepted by SortArticles / SortVideos.
const (
	SortNewest = "newest"
	SortViews  = "views"
)

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// localizedMatches checks the query against the text resolved for lang,
// so an article falls back en -> ar -> ur exactly as it would be displayed.
func localizedMatches(t models.LocalizedText, query, lang string) bool {
	return containsFold(t.Resolve(lang), query)
}

// ArticleMatchesQuery reports whether the query is a substring of the
// article's title or description as resolved for lang. An empty query
// matches.
func ArticleMatchesQuery(a *models.Article, query, lang string) bool {
	if query == "" {
		return true
	}
	return localizedMatches(a.Title, query, lang) || localizedMatches(a.Description, query, lang)
}

// VideoMatchesQuery is ArticleMatchesQuery for videos.
func VideoMatchesQuery(v *models.Video, query, lang string) bool {
	if query == "" {
		return true
	}
	return localizedMatches(v.Title, query, lang) || localizedMatches(v.Description, query, lang)
}

// FilterArticles returns the articles matching the query in lang,
// preserving order.
func FilterArticles(articles []models.Article, query, lang string) []models.Article {
	out := make([]models.Article, 0, len(articles))
	for i := range articles {
		if ArticleMatchesQuery(&articles[i], query, lang) {
			out = append(out, articles[i])
		}
	}
	return out
}

// FilterVideos returns the videos matching the query in lang, preserving
// order.
func FilterVideos(videos []models.Video, query, lang string) []models.Video {
	out := make([]models.Video, 0, len(videos))
	for i := range videos {
		if VideoMatchesQuery(&videos[i], query, lang) {
			out = append(out, videos[i])
		}
	}
	return out
}

// SortArticles orders articles by the named sort: "views" (descending) or
// "newest" (default, by creation time descending).
func SortArticles(articles []models.Article, by string) {
	switch by {
	case SortViews:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Views > articles[j].Views
		})
	default:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		})
	}
}

// SortVideos orders videos the same way SortArticles orders articles.
func SortVideos(videos []models.Video, by string) {
	switch by {
	case SortViews:
		sort.SliceStable(videos, func(i, j int) bool {
			return videos[i].Views > videos[j].Views
		})
	default:
		sort.SliceStable(videos, func(i, j int) bool {
			return videos[i].CreatedAt.After(videos[j].CreatedAt)
		})
	}
}

// EstimateReadTime returns reading minutes for the longest content variant
// at roughly 200 words per minute, minimum 1 for non-empty content.
func EstimateReadTime(content models.LocalizedText) int {
	words := 0
	for _, s := range []string{content.En, content.Ar, content.Ur} {
		if n := len(strings.Fields(s)); n > words {
			words = n
		}
	}
	if words == 0 {
		return 0
	}
	minutes := (words + 199) / 200
	return minutes
}
