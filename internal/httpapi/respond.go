// Package httpapi holds the JSON response helpers shared by every handler.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Respond writes body as JSON with the given status code.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// Error writes {"error": message} with the given status code. Internal
// failures must be sanitized by the caller before reaching this point.
func Error(w http.ResponseWriter, status int, message string) {
	Respond(w, status, map[string]string{"error": message})
}
