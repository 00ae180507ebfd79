package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"ragbot/internal/models"
	"ragbot/internal/repositories"
	"ragbot/internal/services"
)

// Response types

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// responder carries the JSON helpers shared by every handler
type responder struct {
	logger *log.Logger
}

func (h responder) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Printf("Failed to encode JSON: %v", err)
	}
}

func (h responder) sendError(w http.ResponseWriter, status int, message string) {
	h.sendJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Status:  status,
	})
}

// sendServiceError maps a service or repository error to its HTTP status
func (h responder) sendServiceError(w http.ResponseWriter, action string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Printf("❌ %s failed: %v", action, err)
		h.sendError(w, status, fmt.Sprintf("%s failed: %v", action, err))
		return
	}
	h.sendError(w, status, err.Error())
}

// MethodNotAllowedHandler answers requests whose path is served under another method
func MethodNotAllowedHandler(logger *log.Logger) http.HandlerFunc {
	r := responder{logger: logger}
	return func(w http.ResponseWriter, req *http.Request) {
		r.sendError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s is not allowed on %s", req.Method, req.URL.Path))
	}
}

func statusFor(err error) int {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	// a missing bot stays 404 even when the chat path tags it as unavailable
	case errors.Is(err, repositories.ErrBotNotFound),
		errors.Is(err, repositories.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrBotUnavailable),
		errors.Is(err, services.ErrUnsupportedFileType),
		errors.Is(err, services.ErrEmptyDocument),
		errors.Is(err, services.ErrDefaultBotProtected),
		errors.Is(err, repositories.ErrBotAlreadyExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// rangeParam reads an integer query parameter, applying defaultValue when it is
// absent and rejecting values outside [min, max]
func rangeParam(r *http.Request, key string, defaultValue, minValue, maxValue int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.ValidationError{Field: key, Message: "must be an integer"}
	}
	if value < minValue || value > maxValue {
		return 0, &models.ValidationError{Field: key, Message: fmt.Sprintf("must be between %d and %d", minValue, maxValue)}
	}
	return value, nil
}

func (h responder) getBoolQueryParam(r *http.Request, key string, defaultValue bool) bool {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}
