// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/legalconnect/legalconnect/internal/handler/dto"
	"github.com/legalconnect/legalconnect/internal/service"
)

// NotFound handles 404 responses for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}

// writeError writes the flat {"error": message} envelope.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}

// respondServiceError maps service errors onto the API's status
// taxonomy. Unknown errors become a generic 500 so no storage detail
// leaks to clients.
func respondServiceError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	switch {
	case service.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, service.ErrLawyerNotFound):
		writeError(w, http.StatusNotFound, "lawyer not found")
	case errors.Is(err, service.ErrAlreadyAdded):
		writeError(w, http.StatusConflict, "lawyer already in collection")
	case errors.Is(err, service.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "lawyer not in collection")
	case errors.Is(err, service.ErrComparisonFull):
		writeError(w, http.StatusConflict, "maximum 3 lawyers can be compared")
	case errors.Is(err, service.ErrWebhookNotFound):
		writeError(w, http.StatusNotFound, "webhook not found")
	default:
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// lawyerIDParam parses the {lawyerId} or {id} route parameter.
func lawyerIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, service.Validation("invalid lawyer id")
	}
	return id, nil
}
