package handlers

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// MediaStore is the slice of the S3 service the handlers depend on, so
// upload and cleanup can be exercised without a live bucket.
type MediaStore interface {
	Upload(ctx context.Context, prefix, originalFilename string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromURL(url string) (string, bool)
}

// UploadHandler accepts image uploads for article covers and video
// thumbnails and stores them in S3.
type UploadHandler struct {
	S3       MediaStore
	MaxBytes int64
}

var allowedImageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Upload handles POST /api/upload (authenticated, multipart field "file").
// Responds with the public URL to put in imageUrl/thumbnailUrl.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.S3 == nil {
		fail(w, http.StatusServiceUnavailable, "SERVER_ERROR", "upload not configured")
		return
	}
	if h.MaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	}
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "failed to parse multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "missing file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedImageExts[ext]
	if !ok {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "only jpeg, png and webp images are allowed")
		return
	}

	key, err := h.S3.Upload(r.Context(), "images/", header.Filename, file, contentType)
	if err != nil {
		serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"key": key,
		"url": h.S3.PublicURL(key),
	})
}
