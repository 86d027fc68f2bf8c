// Package observability exposes Prometheus instrumentation for the
// dashboard pipeline.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes recorded on the pipeline counter.
const (
	OutcomeSuccess           = "success"
	OutcomeSourceUnavailable = "source_unavailable"
	OutcomeSourceMalformed   = "source_malformed"
	OutcomeError             = "error"
)

// PipelineMetrics holds the Prometheus collectors for pipeline runs. A
// private registry keeps the metrics endpoint limited to what this process
// actually measures.
type PipelineMetrics struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
	items       prometheus.Gauge
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// NewPipelineMetrics creates and registers the pipeline collectors.
func NewPipelineMetrics() *PipelineMetrics {
	m := &PipelineMetrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assetpulse",
			Name:      "pipeline_runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "assetpulse",
			Name:      "pipeline_run_duration_seconds",
			Help:      "Duration of full pipeline runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "assetpulse",
			Name:      "snapshot_items",
			Help:      "Item count of the most recent snapshot.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "assetpulse",
			Name:      "snapshot_cache_hits_total",
			Help:      "Snapshot cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "assetpulse",
			Name:      "snapshot_cache_misses_total",
			Help:      "Snapshot cache misses.",
		}),
	}

	m.registry.MustRegister(
		m.runs,
		m.runDuration,
		m.items,
		m.cacheHits,
		m.cacheMisses,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler returns the HTTP handler serving the private registry.
func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun records one pipeline run.
func (m *PipelineMetrics) ObserveRun(outcome string, d time.Duration) {
	m.runs.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.runDuration.Observe(d.Seconds())
	}
}

// SetItemCount records the item count of the latest snapshot.
func (m *PipelineMetrics) SetItemCount(n int) {
	m.items.Set(float64(n))
}

// CacheHit records a snapshot cache hit.
func (m *PipelineMetrics) CacheHit() { m.cacheHits.Inc() }

// CacheMiss records a snapshot cache miss.
func (m *PipelineMetrics) CacheMiss() { m.cacheMisses.Inc() }
