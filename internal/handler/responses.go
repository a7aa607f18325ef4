package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/QuestPlanner_Go/internal/domain"
	"github.com/osse101/QuestPlanner_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// bufferPool reduces allocations while encoding responses
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service failure and writes the mapped user-facing error
func respondServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	statusCode, userMsg := mapServiceErrorToUserMessage(err)

	log := logger.FromContext(r.Context())
	if statusCode >= http.StatusInternalServerError {
		log.Error(action, "error", err, "status", statusCode)
	} else {
		log.Warn(action, "error", err, "status", statusCode)
	}

	respondError(w, statusCode, userMsg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidInputError   = "Invalid input. Please check your values."
	ErrMsgNegativeXPError     = "Experience must be a non-negative number"
	ErrMsgNegativeLevelError  = "Target level must be non-negative"
	ErrMsgPlayerNotFoundError = "Player not found"
	ErrMsgQuestNotFoundError  = "Quest not found in the catalog"
	ErrMsgPlanNotFoundError   = "No plan saved for this player"
	ErrMsgRateLimitedError    = "Hypixel is rate limiting requests. Please try again shortly."
	ErrMsgUpstreamError       = "Hypixel is unavailable. Please try again later."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusNotFound, ErrMsgQuestNotFoundError
	case errors.Is(err, domain.ErrPlanNotFound):
		return http.StatusNotFound, ErrMsgPlanNotFoundError
	case errors.Is(err, domain.ErrNegativeExperience):
		return http.StatusBadRequest, ErrMsgNegativeXPError
	case errors.Is(err, domain.ErrNegativeLevel):
		return http.StatusBadRequest, ErrMsgNegativeLevelError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrUpstreamRateLimited):
		return http.StatusServiceUnavailable, ErrMsgRateLimitedError
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, ErrMsgUpstreamError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
