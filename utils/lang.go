package utils

import (
	"golang.org/x/text/language"

	"github.com/sada-news/backend/models"
)

var supportedLangs = []language.Tag{
	language.English, // en, the fallback
	language.Arabic,  // ar
	language.Urdu,    // ur
}

var langMatcher = language.NewMatcher(supportedLangs)

// NormalizeLang maps a requested language tag (e.g. "en-US", "ar-EG",
// "ur-PK", or an Accept-Language value) onto one of the supported content
// language codes. Anything unrecognized resolves to English.
func NormalizeLang(requested string) string {
	if requested == "" {
		return models.LangEnglish
	}
	tags, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(tags) == 0 {
		return models.LangEnglish
	}
	_, idx, _ := langMatcher.Match(tags...)
	switch supportedLangs[idx] {
	case language.Arabic:
		return models.LangArabic
	case language.Urdu:
		return models.LangUrdu
	}
	return models.LangEnglish
}
