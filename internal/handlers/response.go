// Package handlers provides HTTP handlers for the driftiAPI service.
package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes body with the given status as application/json
func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
