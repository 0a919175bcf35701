package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/indievibes/vibefeed/internal/domain"
)

type errorResponse struct {
	Message string `json:"message"`
}

// StatusForError maps a command error onto the HTTP status reported to clients.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrIncompatibleFacet):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes its status. Client errors carry their message;
// server errors do not leak internals.
func writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	status := StatusForError(err)
	message := http.StatusText(status)
	if status < http.StatusInternalServerError {
		logger.InfoContext(ctx, msg, "error", err, "status", status)
		message = err.Error()
	} else {
		logger.ErrorContext(ctx, msg, "error", err, "status", status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}
