package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"assetpulse/internal/config"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	paths     config.PathsConfig
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Source    SourceHealth           `json:"source"`
}

// SourceHealth reports the state of the source spreadsheet. The dashboard
// is degraded, not down, when the file is missing: the process serves a
// blocking error until the file is fixed and a refresh re-runs the
// pipeline.
type SourceHealth struct {
	Path      string `json:"path"`
	Available bool   `json:"available"`
}

// NewHealthService creates a new health service
func NewHealthService(version string, paths config.PathsConfig, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		paths:     paths,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// Check returns the current health status
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	available := config.FileExists(s.paths.SourceFile)

	status := "healthy"
	if !available {
		status = "degraded"
	}

	return HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(s.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
		},
		Source: SourceHealth{
			Path:      s.paths.SourceFile,
			Available: available,
		},
	}
}
