package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kozaktomas/photo-prefs/internal/preferences"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// validationErrorResponse is the body of a rejected preferences update.
type validationErrorResponse struct {
	Error   string                   `json:"error"`
	Details []preferences.FieldError `json:"details"`
}

// respondValidationError sends a 400 listing every rejected field.
func respondValidationError(w http.ResponseWriter, errs preferences.ValidationErrors) {
	respondJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "invalid preferences",
		Details: errs,
	})
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
