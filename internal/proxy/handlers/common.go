// Package handlers contains the HTTP handlers served by the backplane
// serve command.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// GetOrGenerateRequestID retrieves X-Request-ID from the header or
// generates a new one.
func GetOrGenerateRequestID(r *http.Request) string {
	if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
		return requestID
	}
	return uuid.New().String()
}

// writeJSONError writes a generic JSON error body. Internal detail is
// never leaked to the client; callers log it server-side.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
