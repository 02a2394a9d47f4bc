package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/sada-news/backend/models"
)

var (
	// contentPolicy keeps the formatting tags editors use in article bodies.
	contentPolicy = bluemonday.UGCPolicy()
	// strictPolicy strips all markup; used for titles and comments.
	strictPolicy = bluemonday.StrictPolicy()
)

// SanitizeContent removes dangerous markup from article/video body HTML.
func SanitizeContent(s string) string {
	return contentPolicy.Sanitize(s)
}

// SanitizePlain strips all markup and trims whitespace; used for comment
// text and display names.
func SanitizePlain(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// SanitizeLocalized applies the content policy to every language variant.
func SanitizeLocalized(t models.LocalizedText) models.LocalizedText {
	return models.LocalizedText{
		En: contentPolicy.Sanitize(t.En),
		Ar: contentPolicy.Sanitize(t.Ar),
		Ur: contentPolicy.Sanitize(t.Ur),
	}
}
