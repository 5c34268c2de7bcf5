package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/server/messages"
	"github.com/dmitrijs2005/authkeeper/internal/server/validation"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends {"error": <message text>}.
func writeError(w http.ResponseWriter, status int, key messages.Key) {
	writeJSON(w, status, map[string]string{"error": messages.Get(key)})
}

// writeValidation sends a 422 with per-field messages.
func writeValidation(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
}
