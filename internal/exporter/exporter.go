package exporter

import (
	"fmt"
	"log/slog"
	"time"
)

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Exporter writes snapshots to report formats.
type Exporter struct {
	logger *slog.Logger
}

// New creates an exporter with the given logger.
func New(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{logger: logger.With(slog.String("component", "exporter"))}
}

// ValidFormat reports whether format names a supported export format.
func ValidFormat(format string) bool {
	switch format {
	case FormatCSV, FormatXLSX, FormatPDF:
		return true
	}
	return false
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Filename returns a timestamped download filename for a format.
func Filename(format string, at time.Time) string {
	return fmt.Sprintf("inventory-report-%s.%s", at.Format("2006-01-02"), format)
}
