package models

import (
	"time"
)

// Article categories.
const (
	CategoryPolitics      = "politics"
	CategoryBusiness      = "business"
	CategoryTechnology    = "technology"
	CategorySports        = "sports"
	CategoryEntertainment = "entertainment"
	CategoryHealth        = "health"
	CategoryWorld         = "world"
	CategoryLocal         = "local"
)

var ValidCategories = []string{
	CategoryPolitics,
	CategoryBusiness,
	CategoryTechnology,
	CategorySports,
	CategoryEntertainment,
	CategoryHealth,
	CategoryWorld,
	CategoryLocal,
}

// Publication status for articles and videos.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

var ValidStatuses = []string{StatusDraft, StatusPublished}

type Article struct {
	ID                string        `bson:"_id,omitempty" json:"id"`
	Title             LocalizedText `bson:"title" json:"title"`
	Description       LocalizedText `bson:"description" json:"description"`
	Content           LocalizedText `bson:"content" json:"content"`
	Slug              string        `bson:"slug,omitempty" json:"slug,omitempty"`
	Category          string        `bson:"category" json:"category"`
	ImageURL          string        `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Status            string        `bson:"status" json:"status"` // draft or published
	IsFeatured        bool          `bson:"isFeatured" json:"isFeatured"`
	IsTrending        bool          `bson:"isTrending" json:"isTrending"`
	Views             int64         `bson:"views" json:"views"`
	Likes             int64         `bson:"likes" json:"likes"`
	Comments          []Comment     `bson:"comments,omitempty" json:"comments"`
	ReadTime          int           `bson:"readTime,omitempty" json:"readTime,omitempty"` // minutes
	CreatedBy         string        `bson:"createdBy" json:"createdBy"`
	CreatedByUsername string        `bson:"createdByUsername" json:"createdByUsername"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Comment is embedded in an article. The user field is a free-text display
// name, not a User reference.
type Comment struct {
	ID        string    `bson:"id" json:"id"`
	Text      string    `bson:"text" json:"text"`
	User      string    `bson:"user" json:"user"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Likes     int64     `bson:"likes" json:"likes"`
}

func CategoryValid(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

func StatusValid(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
