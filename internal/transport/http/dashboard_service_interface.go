package http

import (
	"context"

	"assetpulse/internal/presentation"
	"assetpulse/internal/services"
	"assetpulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations the handlers
// depend on. Defined on the consumer side so tests can supply mocks.
type DashboardServiceInterface interface {
	Snapshot(ctx context.Context) (*domain.MetricSnapshot, error)
	Payload(ctx context.Context) (*presentation.Payload, error)
	Series(ctx context.Context, name string) (presentation.Series, error)
	Refresh(ctx context.Context) (*domain.MetricSnapshot, error)
}

// HealthServiceInterface defines health check operations.
type HealthServiceInterface interface {
	Check(ctx context.Context) services.HealthStatus
}
