// Package httpx provides JSON response utilities shared by all handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorItem is a single localized error message.
type ErrorItem struct {
	Message string `json:"message"`
}

// ErrorBody is the error envelope every endpoint returns on failure.
type ErrorBody struct {
	Errors []ErrorItem `json:"errors"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends the standard error envelope.
func Error(w http.ResponseWriter, status int, messages ...string) {
	items := make([]ErrorItem, len(messages))
	for i, msg := range messages {
		items[i] = ErrorItem{Message: msg}
	}
	JSON(w, status, ErrorBody{Errors: items})
}

// Message sends a single localized confirmation message.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// ValidationFailed sends a 400 carrying the field-level issue list next to a
// localized summary message.
func ValidationFailed(w http.ResponseWriter, message string, issues any) {
	JSON(w, http.StatusBadRequest, map[string]any{
		"message": message,
		"errors":  issues,
	})
}

// DecodeJSON decodes the request body into target.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
