package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// ErrorHandler provides centralized error handling for HTTP handlers
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError maps any error to an APIError and writes the response
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	render.Render(w, r, NewErrorResponse(h.toAPIError(r.Context(), err)))
}

// toAPIError converts an error to its APIError representation
func (h *ErrorHandler) toAPIError(ctx context.Context, err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, context.Canceled):
		return New(499, "REQUEST_CANCELLED", "Request was cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		return New(http.StatusGatewayTimeout, "REQUEST_TIMEOUT", "Request timed out")
	case IsSourceUnavailable(err):
		return SourceUnavailableError(err)
	case IsSourceMalformed(err):
		return SourceMalformedError(err)
	}

	return ErrInternalServer
}
