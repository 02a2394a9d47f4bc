// Package handlers implements the REST endpoints for auth, articles,
// videos, user administration, search and uploads.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sada-news/backend/store"
)

// Verbose controls whether 500 responses carry the underlying error
// message. main leaves it off when APP_ENV=production.
var Verbose = false

// writeJSON writes v with the success flag folded in. v must be a map so
// resource-specific keys sit next to "success".
func writeJSON(w http.ResponseWriter, status int, v map[string]any) {
	if _, ok := v["success"]; !ok {
		v["success"] = true
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("encode response:", err)
	}
}

// fail writes the standard failure envelope with a machine-readable code.
func fail(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
		"code":    code,
	})
}

// serverError logs err and writes a 500. The underlying message is only
// exposed outside production.
func serverError(w http.ResponseWriter, err error) {
	log.Println("server error:", err)
	msg := "internal server error"
	if Verbose && err != nil {
		msg = err.Error()
	}
	fail(w, http.StatusInternalServerError, "SERVER_ERROR", msg)
}

// storeError maps store sentinel errors onto the HTTP error categories:
// not-found 404, duplicate 409, anything else 500.
func storeError(w http.ResponseWriter, err error, resource string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(w, http.StatusNotFound, "NOT_FOUND", resource+" not found")
	case errors.Is(err, store.ErrDuplicate):
		fail(w, http.StatusConflict, "DUPLICATE_ENTRY", resource+" already exists")
	default:
		serverError(w, err)
	}
}

// decodeBody parses the JSON request body into dst, answering 400 itself
// on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		fail(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return false
	}
	return true
}
