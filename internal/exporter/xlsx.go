package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"assetpulse/pkg/contracts/domain"
)

// WriteXLSX streams the snapshot as a two-sheet workbook: a summary sheet
// with the key figures and a categories sheet with the per-category totals.
func (e *Exporter) WriteXLSX(ctx context.Context, w io.Writer, snapshot *domain.MetricSnapshot) error {
	e.logger.InfoContext(ctx, "exporting snapshot as XLSX",
		slog.Int("category_count", len(snapshot.Categories)))

	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	const categorySheet = "Categories"

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(categorySheet); err != nil {
		return fmt.Errorf("create category sheet: %w", err)
	}

	summaryRows := [][]interface{}{
		{"Generated at", snapshot.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Source file", snapshot.Source.Path},
		{"Items", snapshot.ItemCount},
		{"Dropped rows", snapshot.DroppedRows},
		{"Total spend", snapshot.TotalSpend.InexactFloat64()},
		{"Traceability gaps", snapshot.Traceability.GapCount},
		{"Gap ratio", snapshot.Traceability.GapRatio},
		{"Accessory total", snapshot.Accessories.Total.InexactFloat64()},
		{"Accessory items", snapshot.Accessories.Items},
		{"Accessory share", snapshot.Accessories.ShareOfSpend},
	}
	for _, fig := range snapshot.Reference {
		summaryRows = append(summaryRows,
			[]interface{}{fmt.Sprintf("Reference depreciation: %s", fig.Label), fig.Reference.InexactFloat64()},
			[]interface{}{fmt.Sprintf("Raw spreadsheet total: %s", fig.Label), fig.RawTotal.InexactFloat64()},
		)
	}
	for i, row := range summaryRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("summary cell name: %w", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	categoryHeader := []interface{}{"Category", "Total", "Items", "Unknown cost"}
	if err := f.SetSheetRow(categorySheet, "A1", &categoryHeader); err != nil {
		return fmt.Errorf("write category header: %w", err)
	}
	for i, c := range snapshot.Categories {
		row := []interface{}{c.Label, c.Total.InexactFloat64(), c.Items, c.UnknownCost}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("category cell name: %w", err)
		}
		if err := f.SetSheetRow(categorySheet, cell, &row); err != nil {
			return fmt.Errorf("write category row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
