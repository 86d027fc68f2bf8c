package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "assetpulse/internal/errors"
	"assetpulse/internal/presentation"
	"assetpulse/internal/shared/testutil"
	"assetpulse/pkg/contracts/domain"
)

// writeSourceFile writes an inventory workbook to path with the given rows
// appended below the standard header.
func writeSourceFile(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Inventário"))
	all := append([][]interface{}{
		{"Nome", "Status", "Grupo", "Usuário", "Número de inventário", "Tipo do item", "Categoria", "Valor médio unitário"},
	}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Inventário", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

// countingCache wraps the in-memory cache to count lookups and stores.
type countingCache struct {
	inner SnapshotCache
	gets  int
	hits  int
	puts  int
}

func (c *countingCache) Get(key string) (*domain.MetricSnapshot, bool) {
	c.gets++
	snap, ok := c.inner.Get(key)
	if ok {
		c.hits++
	}
	return snap, ok
}

func (c *countingCache) Put(key string, snap *domain.MetricSnapshot) {
	c.puts++
	c.inner.Put(key, snap)
}

func (c *countingCache) Invalidate() { c.inner.Invalidate() }

func newTestService(t *testing.T, sourcePath string, cache SnapshotCache) *DashboardService {
	t.Helper()
	return NewDashboardService(DashboardServiceConfig{
		SourcePath: sourcePath,
		Rates:      domain.DefaultReferenceRates(),
		Cache:      cache,
	}, nil)
}

func TestDashboardService_Snapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valores.xlsx")
	writeSourceFile(t, path, [][]interface{}{
		{"MacBook Pro", "Em uso", "TI", "Ana", "INV-001", "Computador", "Mac", 1800.00},
		{"Mouse sem fio", "Sem Uso", "TI", "", "INV-002", "Periférico", "Mouse", 45.00},
	})

	svc := newTestService(t, path, nil)
	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, snap.ItemCount)
	assert.Equal(t, "1845", snap.TotalSpend.String())
	require.Len(t, snap.Reference, 1)
	assert.Equal(t, "2145", snap.Reference[0].Reference.String())
	assert.Equal(t, 1, snap.Traceability.GapCount)
	assert.Equal(t, path, snap.Source.Path)
}

func TestDashboardService_Snapshot_CacheHit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valores.xlsx")
	writeSourceFile(t, path, [][]interface{}{
		{"Mouse", "Em uso", "TI", "Ana", "INV-001", "Periférico", "Mouse", 45.00},
	})

	cache := &countingCache{inner: NewMemorySnapshotCache()}
	svc := newTestService(t, path, cache)

	first, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	second, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second, "unchanged source serves the cached snapshot")
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 1, cache.puts)
}

func TestDashboardService_Snapshot_RecomputesWhenSourceChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valores.xlsx")
	writeSourceFile(t, path, [][]interface{}{
		{"Mouse", "Em uso", "TI", "Ana", "INV-001", "Periférico", "Mouse", 45.00},
	})

	svc := newTestService(t, path, nil)
	first, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.ItemCount)

	// rewrite with one more row and a bumped mtime
	writeSourceFile(t, path, [][]interface{}{
		{"Mouse", "Em uso", "TI", "Ana", "INV-001", "Periférico", "Mouse", 45.00},
		{"Teclado", "Em uso", "TI", "Bia", "INV-002", "Periférico", "Teclado", 60.00},
	})
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	second, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second.ItemCount)
}

func TestDashboardService_Refresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valores.xlsx")
	writeSourceFile(t, path, [][]interface{}{
		{"Mouse", "Em uso", "TI", "Ana", "INV-001", "Periférico", "Mouse", 45.00},
	})

	cache := &countingCache{inner: NewMemorySnapshotCache()}
	svc := newTestService(t, path, cache)

	first, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, refreshed, "refresh recomputes even for an unchanged source")
	assert.Equal(t, 2, cache.puts)
}

func TestDashboardService_Snapshot_SourceUnavailable(t *testing.T) {
	svc := newTestService(t, filepath.Join(t.TempDir(), "missing.xlsx"), nil)

	_, err := svc.Snapshot(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsSourceUnavailable(err))
}

func TestDashboardService_Payload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valores.xlsx")
	writeSourceFile(t, path, [][]interface{}{
		{"MacBook Pro", "Em uso", "TI", "Ana", "INV-001", "Computador", "Mac", 9500.00},
		{"Mouse sem fio", "Sem Uso", "TI", "Bia", "INV-002", "Periférico", "Mouse", 45.00},
	})

	svc := newTestService(t, path, nil)
	payload, err := svc.Payload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, payload.ItemCount)
	assert.Equal(t, "R$9.545,00", payload.Figures["total_spend"])
	require.Len(t, payload.Series[presentation.SeriesSpendByCategory], 2)
	assert.Equal(t, "Mac", payload.Series[presentation.SeriesSpendByCategory][0].Label)
}

func TestDashboardService_Series(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valores.xlsx")
	writeSourceFile(t, path, [][]interface{}{
		{"Mouse", "Em uso", "TI", "Ana", "INV-001", "Periférico", "Mouse", 45.00},
	})

	svc := newTestService(t, path, nil)

	series, err := svc.Series(context.Background(), presentation.SeriesSpendByCategory)
	require.NoError(t, err)
	assert.Len(t, series, 1)

	_, err = svc.Series(context.Background(), "nonsense")
	assert.ErrorIs(t, err, apperrors.ErrSeriesNotFound)
}

func TestDashboardService_LogsPipelineRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valores.xlsx")
	writeSourceFile(t, path, [][]interface{}{
		{"Mouse", "Em uso", "TI", "Ana", "INV-001", "Periférico", "Mouse", 45.00},
	})

	handler := testutil.NewBufferedSlogHandler(t)
	svc := NewDashboardService(DashboardServiceConfig{
		SourcePath: path,
		Rates:      domain.DefaultReferenceRates(),
	}, slog.New(handler))

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	rec, ok := handler.FindRecord("pipeline run complete")
	require.True(t, ok)
	assert.Equal(t, "dashboard_service", rec.Attrs["component"])
	assert.Equal(t, 1, int(rec.Attrs["items"].(int64)))
}

func TestMemorySnapshotCache(t *testing.T) {
	cache := NewMemorySnapshotCache()
	snap := &domain.MetricSnapshot{ItemCount: 3}

	_, ok := cache.Get("a")
	assert.False(t, ok)

	cache.Put("a", snap)
	got, ok := cache.Get("a")
	require.True(t, ok)
	assert.Same(t, snap, got)

	// single entry: a new key evicts the old one
	cache.Put("b", snap)
	_, ok = cache.Get("a")
	assert.False(t, ok)

	cache.Invalidate()
	_, ok = cache.Get("b")
	assert.False(t, ok)
}
