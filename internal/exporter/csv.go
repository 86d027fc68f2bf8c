package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"assetpulse/internal/presentation"
	"assetpulse/pkg/contracts/domain"
)

// utf8BOM prefixes CSV output so Excel detects the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVOptions configures CSV export behavior
type CSVOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV streams the snapshot's key figures and per-category totals as
// CSV.
func (e *Exporter) WriteCSV(ctx context.Context, w io.Writer, snapshot *domain.MetricSnapshot, options CSVOptions) error {
	e.logger.InfoContext(ctx, "exporting snapshot as CSV",
		slog.Int("category_count", len(snapshot.Categories)))

	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Section", "Label", "Value", "Items"}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	rows := [][]string{
		{"summary", "Total spend", snapshot.TotalSpend.StringFixed(2), fmt.Sprintf("%d", snapshot.ItemCount)},
		{"summary", "Traceability gaps", presentation.FormatPercent(snapshot.Traceability.GapRatio), fmt.Sprintf("%d", snapshot.Traceability.GapCount)},
		{"summary", "Low-cost accessories", snapshot.Accessories.Total.StringFixed(2), fmt.Sprintf("%d", snapshot.Accessories.Items)},
		{"summary", "Dropped rows", fmt.Sprintf("%d", snapshot.DroppedRows), ""},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV summary row: %w", err)
		}
	}

	for _, c := range snapshot.Categories {
		if err := cw.Write([]string{"category", c.Label, c.Total.StringFixed(2), fmt.Sprintf("%d", c.Items)}); err != nil {
			return fmt.Errorf("write CSV category row: %w", err)
		}
	}

	for _, f := range snapshot.Reference {
		if err := cw.Write([]string{"reference", f.Label, f.Reference.StringFixed(2), fmt.Sprintf("%d", f.Items)}); err != nil {
			return fmt.Errorf("write CSV reference row: %w", err)
		}
	}

	for _, c := range snapshot.CostCenters.Centers {
		if err := cw.Write([]string{"cost_center", c.Center, c.Total.StringFixed(2), fmt.Sprintf("%d", c.Items)}); err != nil {
			return fmt.Errorf("write CSV cost center row: %w", err)
		}
	}

	for _, p := range snapshot.Priorities.Breakdown {
		if err := cw.Write([]string{"priority", p.Label, p.Total.StringFixed(2), fmt.Sprintf("%d", p.Items)}); err != nil {
			return fmt.Errorf("write CSV priority row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
