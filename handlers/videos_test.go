package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sada-news/backend/models"
)

func videoBody(title, url string) map[string]any {
	return map[string]any{
		"title":    map[string]string{"en": title},
		"videoUrl": url,
		"category": models.CategoryWorld,
		"status":   models.StatusPublished,
	}
}

func createVideo(t *testing.T, app *testApp, u *models.User, body map[string]any) string {
	t.Helper()
	rec := app.do(t, http.MethodPost, "/api/videos", app.token(t, u), body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	video := sub(t, decode(t, rec), "video")
	id, ok := video["id"].(string)
	require.True(t, ok)
	return id
}

func TestCreateVideoExtractsYouTubeID(t *testing.T) {
	app := newTestApp(t)
	editor := app.user(t, "editor1", models.RoleEditor)

	rec := app.do(t, http.MethodPost, "/api/videos", app.token(t, editor),
		videoBody("Report", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	require.Equal(t, http.StatusOK, rec.Code)
	video := sub(t, decode(t, rec), "video")
	assert.Equal(t, "dQw4w9WgXcQ", video["youtubeId"])
	assert.Equal(t, models.PlatformYouTube, video["platform"])
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", video["thumbnailUrl"])
	assert.Equal(t, editor.ID, video["createdBy"])
}

func TestCreateVideoShortURL(t *testing.T) {
	app := newTestApp(t)
	editor := app.user(t, "editor1", models.RoleEditor)

	rec := app.do(t, http.MethodPost, "/api/videos", app.token(t, editor),
		videoBody("Clip", "https://youtu.be/abc123XYZ_-"))
	require.Equal(t, http.StatusOK, rec.Code)
	video := sub(t, decode(t, rec), "video")
	assert.Equal(t, "abc123XYZ_-", video["youtubeId"])
}

func TestCreateVideoNonYouTubeDefaultsOther(t *testing.T) {
	app := newTestApp(t)
	editor := app.user(t, "editor1", models.RoleEditor)

	rec := app.do(t, http.MethodPost, "/api/videos", app.token(t, editor),
		videoBody("Stream", "https://example.com/video.mp4"))
	require.Equal(t, http.StatusOK, rec.Code)
	video := sub(t, decode(t, rec), "video")
	assert.Equal(t, models.PlatformOther, video["platform"])
	assert.Empty(t, video["youtubeId"])
}

func TestCreateVideoExplicitThumbnailWins(t *testing.T) {
	app := newTestApp(t)
	editor := app.user(t, "editor1", models.RoleEditor)

	body := videoBody("Custom", "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	body["thumbnailUrl"] = "https://cdn.example.com/custom.jpg"
	rec := app.do(t, http.MethodPost, "/api/videos", app.token(t, editor), body)
	require.Equal(t, http.StatusOK, rec.Code)
	video := sub(t, decode(t, rec), "video")
	assert.Equal(t, "https://cdn.example.com/custom.jpg", video["thumbnailUrl"])
}

func TestCreateVideoValidation(t *testing.T) {
	app := newTestApp(t)
	editor := app.user(t, "editor1", models.RoleEditor)
	token := app.token(t, editor)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing url", map[string]any{"title": map[string]string{"en": "T"}, "category": models.CategoryWorld}},
		{"empty title", map[string]any{"videoUrl": "https://youtu.be/abc123XYZ_-", "category": models.CategoryWorld}},
		{"bad platform", func() map[string]any {
			b := videoBody("T", "https://example.com/v.mp4")
			b["platform"] = "vimeo"
			return b
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, http.MethodPost, "/api/videos", token, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_ERROR", decode(t, rec)["code"])
		})
	}
}

func TestUpdateVideoResyncsYouTubeID(t *testing.T) {
	app := newTestApp(t)
	editor := app.user(t, "editor1", models.RoleEditor)
	id := createVideo(t, app, editor, videoBody("Moving", "https://youtu.be/abc123XYZ_-"))

	rec := app.do(t, http.MethodPut, "/api/videos/"+id, app.token(t, editor), map[string]any{
		"videoUrl": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	video := sub(t, decode(t, rec), "video")
	assert.Equal(t, "dQw4w9WgXcQ", video["youtubeId"])
}

func TestUpdateVideoRederivesThumbnail(t *testing.T) {
	app := newTestApp(t)
	editor := app.user(t, "editor1", models.RoleEditor)
	id := createVideo(t, app, editor, videoBody("Moving", "https://youtu.be/abc123XYZ_-"))

	rec := app.do(t, http.MethodPut, "/api/videos/"+id, app.token(t, editor), map[string]any{
		"videoUrl": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	video := sub(t, decode(t, rec), "video")
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", video["thumbnailUrl"],
		"auto-generated thumbnail follows the new URL")
}

func TestUpdateVideoKeepsCustomThumbnailOnURLChange(t *testing.T) {
	app := newTestApp(t)
	editor := app.user(t, "editor1", models.RoleEditor)

	body := videoBody("Custom", "https://youtu.be/abc123XYZ_-")
	body["thumbnailUrl"] = "https://cdn.example.com/custom.jpg"
	id := createVideo(t, app, editor, body)

	rec := app.do(t, http.MethodPut, "/api/videos/"+id, app.token(t, editor), map[string]any{
		"videoUrl": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	video := sub(t, decode(t, rec), "video")
	assert.Equal(t, "https://cdn.example.com/custom.jpg", video["thumbnailUrl"])
}

func TestDeleteVideoRemovesUploadedThumbnail(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner", models.RoleEditor)

	body := videoBody("Uploaded", "https://example.com/v.mp4")
	body["thumbnailUrl"] = fakeMediaPrefix + "images/thumb.jpg"
	id := createVideo(t, app, owner, body)

	rec := app.do(t, http.MethodDelete, "/api/videos/"+id, app.token(t, owner), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"images/thumb.jpg"}, app.media.deleted)
}

func TestDeleteVideoKeepsDerivedThumbnail(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner", models.RoleEditor)
	id := createVideo(t, app, owner, videoBody("Derived", "https://youtu.be/abc123XYZ_-"))

	rec := app.do(t, http.MethodDelete, "/api/videos/"+id, app.token(t, owner), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, app.media.deleted)
}

func TestUpdateVideoOwnership(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner", models.RoleEditor)
	other := app.user(t, "other", models.RoleEditor)
	id := createVideo(t, app, owner, videoBody("Owned", "https://youtu.be/abc123XYZ_-"))

	rec := app.do(t, http.MethodPut, "/api/videos/"+id, app.token(t, other), map[string]any{
		"isFeatured": true,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, rec)["code"])
}

func TestDeleteVideo(t *testing.T) {
	app := newTestApp(t)
	owner := app.user(t, "owner", models.RoleEditor)
	id := createVideo(t, app, owner, videoBody("Doomed", "https://youtu.be/abc123XYZ_-"))

	rec := app.do(t, http.MethodDelete, "/api/videos/"+id, app.token(t, owner), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/videos/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVideoViewsAndLikes(t *testing.T) {
	app := newTestApp(t)
	editor := app.user(t, "editor1", models.RoleEditor)
	id := createVideo(t, app, editor, videoBody("Popular", "https://youtu.be/abc123XYZ_-"))

	rec := app.do(t, http.MethodGet, "/api/videos/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	video := sub(t, decode(t, rec), "video")
	assert.EqualValues(t, 1, video["views"])

	rec = app.do(t, http.MethodPost, "/api/videos/"+id+"/like", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["likes"])

	rec = app.do(t, http.MethodPost, "/api/videos/"+id+"/unlike", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode(t, rec)["likes"])

	rec = app.do(t, http.MethodPost, "/api/videos/"+id+"/unlike", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decode(t, rec)["likes"], "likes never go negative")
}

func TestListVideosPlatformFilter(t *testing.T) {
	app := newTestApp(t)
	editor := app.user(t, "editor1", models.RoleEditor)
	createVideo(t, app, editor, videoBody("YT", "https://youtu.be/abc123XYZ_-"))
	createVideo(t, app, editor, videoBody("MP4", "https://example.com/v.mp4"))

	rec := app.do(t, http.MethodGet, "/api/videos?platform="+models.PlatformYouTube, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	videos := decode(t, rec)["videos"].([]any)
	require.Len(t, videos, 1)
	first := videos[0].(map[string]any)
	assert.Equal(t, models.PlatformYouTube, first["platform"])
}
