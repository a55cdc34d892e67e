package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/taletique/tailor-portal/internal/validation"
)

// ErrorResponse is the JSON error envelope: {message, errors?}.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Message: message})
}

func respondValidationError(w http.ResponseWriter, message string, errs validation.Errors) {
	respondJSON(w, http.StatusBadRequest, ErrorResponse{Message: message, Errors: errs})
}
