package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"microarchive/internal/contextutil"
	"microarchive/internal/hierarchy"
	"microarchive/internal/publish"
	"microarchive/internal/site"
	"microarchive/internal/storage"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps core and service errors to HTTP status codes.
func statusFor(err error) int {
	var validationErr *publish.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, hierarchy.ErrMalformedIdentifier):
		return http.StatusBadRequest
	case errors.Is(err, hierarchy.ErrConflictingIdentifier):
		return http.StatusConflict
	case errors.Is(err, site.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// handleError logs err and writes the matching error response.
// Internal errors are reported with defaultMsg only.
func handleError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, defaultMsg, "error", err)
		if status == http.StatusInternalServerError {
			writeError(w, status, defaultMsg)
			return
		}
	} else {
		logger.WarnContext(ctx, defaultMsg, "error", err, "status", status)
	}
	writeError(w, status, err.Error())
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}

// writeJSON writes v as a 200 JSON response.
func writeJSON(w http.ResponseWriter, ctx context.Context, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
