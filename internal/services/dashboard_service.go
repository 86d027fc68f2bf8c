package services

import (
	"context"
	"log/slog"
	"time"

	apperrors "assetpulse/internal/errors"
	"assetpulse/internal/loader"
	"assetpulse/internal/metrics"
	"assetpulse/internal/normalizer"
	"assetpulse/internal/observability"
	"assetpulse/internal/presentation"
	"assetpulse/pkg/contracts/domain"
)

// DashboardService runs the data-to-insight pipeline: load the source
// spreadsheet, normalize rows, compute the metric snapshot, and shape it
// for presentation. Each run is a fresh, stateless batch computation; only
// the injected cache carries results between requests, keyed by source
// identity.
type DashboardService struct {
	loader     *loader.Loader
	normalizer *normalizer.Normalizer
	engine     *metrics.Engine
	adapter    *presentation.Adapter
	cache      SnapshotCache
	metrics    *observability.PipelineMetrics
	rates      domain.ReferenceRates
	sourcePath string
	logger     *slog.Logger
}

// DashboardServiceConfig holds the dependencies of a dashboard service.
// Cache and Metrics may be nil; a fresh in-memory cache and no-op-free
// collectors are then used.
type DashboardServiceConfig struct {
	SourcePath string
	Rates      domain.ReferenceRates
	Cache      SnapshotCache
	Metrics    *observability.PipelineMetrics
}

// NewDashboardService wires the pipeline stages together.
func NewDashboardService(cfg DashboardServiceConfig, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	cache := cfg.Cache
	if cache == nil {
		cache = NewMemorySnapshotCache()
	}
	pm := cfg.Metrics
	if pm == nil {
		pm = observability.NewPipelineMetrics()
	}
	return &DashboardService{
		loader:     loader.New(logger),
		normalizer: normalizer.New(logger),
		engine:     metrics.NewEngine(logger),
		adapter:    presentation.NewAdapter(),
		cache:      cache,
		metrics:    pm,
		rates:      cfg.Rates,
		sourcePath: cfg.SourcePath,
		logger:     logger.With(slog.String("component", "dashboard_service")),
	}
}

// Snapshot returns the metric snapshot for the current source file,
// recomputing only when the file's identity changed since the cached run.
func (s *DashboardService) Snapshot(ctx context.Context) (*domain.MetricSnapshot, error) {
	fingerprint, err := s.loader.Fingerprint(s.sourcePath)
	if err != nil {
		s.metrics.ObserveRun(outcomeFor(err), 0)
		return nil, err
	}

	if cached, ok := s.cache.Get(fingerprint.Key()); ok {
		s.metrics.CacheHit()
		s.logger.DebugContext(ctx, "snapshot cache hit",
			slog.String("source", fingerprint.Path))
		return cached, nil
	}
	s.metrics.CacheMiss()

	snapshot, err := s.compute(ctx, fingerprint)
	if err != nil {
		return nil, err
	}

	s.cache.Put(fingerprint.Key(), snapshot)
	return snapshot, nil
}

// compute runs the full pipeline once for the given source fingerprint.
func (s *DashboardService) compute(ctx context.Context, fingerprint domain.SourceFingerprint) (*domain.MetricSnapshot, error) {
	start := time.Now()

	table, err := s.loader.Load(ctx, s.sourcePath)
	if err != nil {
		s.metrics.ObserveRun(outcomeFor(err), time.Since(start))
		return nil, err
	}

	result := s.normalizer.Normalize(ctx, table)

	snapshot := s.engine.Compute(ctx, metrics.Input{
		Items:            result.Items,
		Rates:            s.rates,
		Source:           fingerprint,
		DroppedRows:      result.DroppedRows,
		CoercionFailures: result.CoercionFailures,
	})

	s.metrics.ObserveRun(observability.OutcomeSuccess, time.Since(start))
	s.metrics.SetItemCount(snapshot.ItemCount)

	s.logger.InfoContext(ctx, "pipeline run complete",
		slog.String("source", fingerprint.Path),
		slog.Int("items", snapshot.ItemCount),
		slog.Duration("duration", time.Since(start)))

	return snapshot, nil
}

// Payload returns the presentation-ready view of the current snapshot.
func (s *DashboardService) Payload(ctx context.Context) (*presentation.Payload, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.adapter.Shape(snapshot), nil
}

// Series returns one named chart series from the current payload.
func (s *DashboardService) Series(ctx context.Context, name string) (presentation.Series, error) {
	payload, err := s.Payload(ctx)
	if err != nil {
		return nil, err
	}
	series, ok := payload.Series[name]
	if !ok {
		return nil, apperrors.ErrSeriesNotFound
	}
	return series, nil
}

// Refresh drops the cached snapshot and recomputes from disk.
func (s *DashboardService) Refresh(ctx context.Context) (*domain.MetricSnapshot, error) {
	s.cache.Invalidate()
	return s.Snapshot(ctx)
}

// SourcePath returns the configured source file path.
func (s *DashboardService) SourcePath() string {
	return s.sourcePath
}

// outcomeFor maps a pipeline error to its metrics outcome label.
func outcomeFor(err error) string {
	switch {
	case apperrors.IsSourceUnavailable(err):
		return observability.OutcomeSourceUnavailable
	case apperrors.IsSourceMalformed(err):
		return observability.OutcomeSourceMalformed
	default:
		return observability.OutcomeError
	}
}
