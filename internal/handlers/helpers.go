package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ternarybob/doceo/internal/models"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// WriteStarted writes a 202 "started" JSON response for async operations.
func WriteStarted(w http.ResponseWriter, contentID string) error {
	return WriteJSON(w, http.StatusAccepted, map[string]string{
		"status":     "started",
		"content_id": contentID,
	})
}

// WriteServiceError maps domain errors to HTTP status codes: bad input 400,
// unknown content 404, unprocessed or already-running content 409, upstream
// model failures 502, everything else 500.
func WriteServiceError(w http.ResponseWriter, err error) error {
	var invocationErr *models.ModelInvocationError
	var schemaErr *models.SchemaValidationError

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		return WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrNotProcessed):
		return WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrAlreadyProcessing):
		return WriteError(w, http.StatusConflict, err.Error())
	case errors.As(err, &invocationErr), errors.As(err, &schemaErr):
		return WriteError(w, http.StatusBadGateway, err.Error())
	default:
		return WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
