package utils

import "regexp"

// youtubeIDRegex matches the 11-character video id in the common YouTube
// URL shapes: watch?v=, youtu.be/, embed/, shorts/ and v/.
var youtubeIDRegex = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/|v/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// YouTubeID extracts the video id from a YouTube URL. Returns "" when the
// URL is not a recognized YouTube link.
func YouTubeID(url string) string {
	m := youtubeIDRegex.FindStringSubmatch(url)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// YouTubeThumbnail returns the standard thumbnail URL for a video id, or
// "" for an empty id.
func YouTubeThumbnail(id string) string {
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg"
}
