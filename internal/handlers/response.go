package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes data as the JSON response body.
func WriteJSON(w http.ResponseWriter, status int, data interface{}, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an ErrorResponse carrying message.
func WriteError(w http.ResponseWriter, status int, message string, log *slog.Logger) {
	WriteJSON(w, status, ErrorResponse{Error: message}, log)
}
