package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetpulse/internal/services"
)

type stubHealthService struct {
	status services.HealthStatus
}

func (s *stubHealthService) Check(ctx context.Context) services.HealthStatus {
	return s.status
}

func TestHealthHandler_Healthy(t *testing.T) {
	svc := &stubHealthService{status: services.HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Source:    services.SourceHealth{Path: "data/valores.xlsx", Available: true},
	}}
	router := NewHealthHandler(svc, slog.Default()).Routes()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body services.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.True(t, body.Source.Available)
}

func TestHealthHandler_Degraded(t *testing.T) {
	svc := &stubHealthService{status: services.HealthStatus{
		Status: "degraded",
		Source: services.SourceHealth{Path: "data/valores.xlsx", Available: false},
	}}
	router := NewHealthHandler(svc, slog.Default()).Routes()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body services.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.False(t, body.Source.Available)
}
