package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPipelineMetrics_ObserveRun(t *testing.T) {
	m := NewPipelineMetrics()

	m.ObserveRun(OutcomeSuccess, 120*time.Millisecond)
	m.ObserveRun(OutcomeSuccess, 80*time.Millisecond)
	m.ObserveRun(OutcomeSourceUnavailable, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeSourceUnavailable)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeSourceMalformed)))
}

func TestPipelineMetrics_CacheCounters(t *testing.T) {
	m := NewPipelineMetrics()

	m.CacheMiss()
	m.CacheHit()
	m.CacheHit()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheMisses))
}

func TestPipelineMetrics_SetItemCount(t *testing.T) {
	m := NewPipelineMetrics()
	m.SetItemCount(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(m.items))
}

func TestPipelineMetrics_Handler(t *testing.T) {
	m := NewPipelineMetrics()
	m.ObserveRun(OutcomeSuccess, time.Millisecond)
	m.SetItemCount(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "assetpulse_pipeline_runs_total")
	assert.Contains(t, body, "assetpulse_snapshot_items 3")
}
