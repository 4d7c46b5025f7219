package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body for every non-2xx response. Field is only
// set for validation failures, naming the offending input.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a JSON error body with the given status code.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, ErrorResponse{Error: msg})
}

// WriteFieldError writes a 400 validation error naming the offending field.
func WriteFieldError(w http.ResponseWriter, msg, field string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg, Field: field})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
