package models

import (
	"time"
)

// Video platforms.
const (
	PlatformYouTube   = "youtube"
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformOther     = "other"
)

var ValidPlatforms = []string{
	PlatformYouTube,
	PlatformFacebook,
	PlatformInstagram,
	PlatformOther,
}

type Video struct {
	ID                string        `bson:"_id,omitempty" json:"id"`
	Title             LocalizedText `bson:"title" json:"title"`
	Description       LocalizedText `bson:"description,omitempty" json:"description"`
	Platform          string        `bson:"platform" json:"platform"`
	VideoURL          string        `bson:"videoUrl" json:"videoUrl"`
	YouTubeID         string        `bson:"youtubeId,omitempty" json:"youtubeId,omitempty"`
	Category          string        `bson:"category" json:"category"`
	ThumbnailURL      string        `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`
	Status            string        `bson:"status" json:"status"` // draft or published
	IsFeatured        bool          `bson:"isFeatured" json:"isFeatured"`
	IsTrending        bool          `bson:"isTrending" json:"isTrending"`
	IsLive            bool          `bson:"isLive" json:"isLive"`
	IsShort           bool          `bson:"isShort" json:"isShort"`
	Views             int64         `bson:"views" json:"views"`
	Likes             int64         `bson:"likes" json:"likes"`
	CreatedBy         string        `bson:"createdBy" json:"createdBy"`
	CreatedByUsername string        `bson:"createdByUsername" json:"createdByUsername"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time     `bson:"updatedAt" json:"updatedAt"`
}

func PlatformValid(platform string) bool {
	for _, p := range ValidPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}
