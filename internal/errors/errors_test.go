package errors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceUnavailable(t *testing.T) {
	err := SourceUnavailable("data/valores.xlsx", fmt.Errorf("no such file"))

	assert.True(t, IsSourceUnavailable(err))
	assert.False(t, IsSourceMalformed(err))
	assert.Contains(t, err.Error(), "data/valores.xlsx")
}

func TestSourceMalformed(t *testing.T) {
	err := SourceMalformed("sheet %q is missing required columns: %s", "Dados", "cost")

	assert.True(t, IsSourceMalformed(err))
	assert.False(t, IsSourceUnavailable(err))
	assert.Contains(t, err.Error(), `sheet "Dados"`)
}

func TestSentinelChecksRejectOtherErrors(t *testing.T) {
	assert.False(t, IsSourceUnavailable(nil))
	assert.False(t, IsSourceUnavailable(fmt.Errorf("boom")))
	assert.False(t, IsSourceMalformed(context.Canceled))
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantError string
	}{
		{
			name:      "api error passes through",
			err:       ErrSeriesNotFound,
			wantCode:  http.StatusNotFound,
			wantError: "SERIES_NOT_FOUND",
		},
		{
			name:      "source unavailable",
			err:       SourceUnavailable("x.xlsx", fmt.Errorf("gone")),
			wantCode:  http.StatusServiceUnavailable,
			wantError: "SOURCE_UNAVAILABLE",
		},
		{
			name:      "source malformed",
			err:       SourceMalformed("bad header"),
			wantCode:  http.StatusUnprocessableEntity,
			wantError: "SOURCE_MALFORMED",
		},
		{
			name:      "cancelled request",
			err:       fmt.Errorf("load: %w", context.Canceled),
			wantCode:  499,
			wantError: "REQUEST_CANCELLED",
		},
		{
			name:      "timeout",
			err:       fmt.Errorf("load: %w", context.DeadlineExceeded),
			wantCode:  http.StatusGatewayTimeout,
			wantError: "REQUEST_TIMEOUT",
		},
		{
			name:      "unknown error stays opaque",
			err:       fmt.Errorf("driver exploded"),
			wantCode:  http.StatusInternalServerError,
			wantError: "INTERNAL_SERVER_ERROR",
		},
	}

	h := NewErrorHandler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			rec := httptest.NewRecorder()

			h.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantError)
		})
	}
}

func TestErrorHandler_NilError(t *testing.T) {
	rec := httptest.NewRecorder()
	NewErrorHandler(nil).HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Zero(t, rec.Body.Len())
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("format", "Unsupported export format: docx")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)
	details, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "format", details.Field)
}
