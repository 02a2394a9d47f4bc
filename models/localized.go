package models

// Supported content languages.
const (
	LangEnglish = "en"
	LangArabic  = "ar"
	LangUrdu    = "ur"
)

var ValidLanguages = []string{LangEnglish, LangArabic, LangUrdu}

// LocalizedText holds the three language variants of a piece of text.
// Any field may be empty; display falls back en -> ar -> ur.
type LocalizedText struct {
	En string `bson:"en,omitempty" json:"en,omitempty"`
	Ar string `bson:"ar,omitempty" json:"ar,omitempty"`
	Ur string `bson:"ur,omitempty" json:"ur,omitempty"`
}

// Get returns the variant for lang, or "" if lang is not a supported code.
func (t LocalizedText) Get(lang string) string {
	switch lang {
	case LangEnglish:
		return t.En
	case LangArabic:
		return t.Ar
	case LangUrdu:
		return t.Ur
	}
	return ""
}

// Resolve returns the text in the requested language, falling back through
// en -> ar -> ur when the requested variant is empty.
func (t LocalizedText) Resolve(lang string) string {
	if s := t.Get(lang); s != "" {
		return s
	}
	for _, l := range ValidLanguages {
		if s := t.Get(l); s != "" {
			return s
		}
	}
	return ""
}

// Empty reports whether no variant is set.
func (t LocalizedText) Empty() bool {
	return t.En == "" && t.Ar == "" && t.Ur == ""
}
