// Package loader reads the source inventory spreadsheet into an ordered,
// column-normalized raw table. It is the only component that touches the
// source file, and it only ever reads it.
package loader

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	apperrors "assetpulse/internal/errors"
	"assetpulse/pkg/contracts/domain"
)

// Canonical column names produced by header normalization. These are the
// contract between the loader and the rest of the pipeline.
const (
	ColName            = "name"
	ColCategory        = "category"
	ColCost            = "cost"
	ColResponsible     = "responsible"
	ColInventoryNumber = "inventory_number"
	ColCostCenter      = "cost_center"
	ColStatus          = "status"
	ColItemType        = "item_type"
)

// requiredColumns must all be present in the header row, or the source is
// malformed.
var requiredColumns = []string{
	ColCategory,
	ColCost,
	ColResponsible,
	ColInventoryNumber,
	ColCostCenter,
}

// headerAliases maps normalized source headers to canonical column names.
// The source workbook carries Portuguese headers; normalization strips
// accents first, so "Número de inventário" arrives as "numero_de_inventario".
var headerAliases = map[string]string{
	"nome":                  ColName,
	"categoria":             ColCategory,
	"valor_medio_unitario":  ColCost,
	"valor_unitario":        ColCost,
	"custo":                 ColCost,
	"usuario":               ColResponsible,
	"responsavel":           ColResponsible,
	"numero_de_inventario":  ColInventoryNumber,
	"numero_inventario":     ColInventoryNumber,
	"grupo":                 ColCostCenter,
	"centro_de_custo":       ColCostCenter,
	"status":                ColStatus,
	"tipo_do_item":          ColItemType,
	"tipo_item":             ColItemType,
}

// headerSearchDepth limits how many leading rows are scanned for a header.
const headerSearchDepth = 10

var nonAlnum = regexp.MustCompile(`[^0-9a-z ]+`)

// RawRow is one spreadsheet row keyed by canonical column name. Values are
// raw cell strings; coercion is the normalizer's job.
type RawRow map[string]string

// RawTable is the ordered result of loading the source spreadsheet.
type RawTable struct {
	SheetName string
	Columns   []string
	Rows      []RawRow
}

// Loader reads inventory workbooks.
type Loader struct {
	logger *slog.Logger
}

// New creates a loader with the given logger.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "loader"))}
}

// Fingerprint stats the source file and returns its identity for caching.
// A missing or unreadable file is a fatal source-unavailable error.
func (l *Loader) Fingerprint(path string) (domain.SourceFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.SourceFingerprint{}, apperrors.SourceUnavailable(path, err)
	}
	return domain.SourceFingerprint{
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

// Load opens the workbook at path and returns its inventory sheet as an
// ordered raw table. Row order is preserved exactly as stored.
func (l *Loader) Load(ctx context.Context, path string) (*RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.SourceUnavailable(path, err)
	}
	defer f.Close()

	sheetName, rows, headerRow, columnMap, err := l.findInventorySheet(f)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "found inventory sheet",
		slog.String("path", path),
		slog.String("sheet_name", sheetName),
		slog.Int("header_row", headerRow),
		slog.Int("total_rows", len(rows)))

	table := &RawTable{
		SheetName: sheetName,
		Columns:   sortedColumns(columnMap),
	}

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		raw := make(RawRow, len(columnMap))
		empty := true
		for col, idx := range columnMap {
			if idx >= len(row) {
				continue
			}
			val := strings.TrimSpace(row[idx])
			if val != "" {
				empty = false
			}
			raw[col] = val
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, raw)
	}

	l.logger.InfoContext(ctx, "loaded raw rows",
		slog.String("sheet_name", sheetName),
		slog.Int("row_count", len(table.Rows)))

	return table, nil
}

// findInventorySheet scans the workbook for a sheet whose leading rows
// contain a recognizable inventory header, and maps header cells to
// canonical column positions.
func (l *Loader) findInventorySheet(f *excelize.File) (string, [][]string, int, map[string]int, error) {
	var firstErr error
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		headerRow, columnMap := findHeaderRow(rows)
		if headerRow == -1 {
			continue
		}
		if missing := missingColumns(columnMap); len(missing) > 0 {
			return "", nil, 0, nil, apperrors.SourceMalformed(
				"sheet %q is missing required columns: %s", name, strings.Join(missing, ", "))
		}
		return name, rows, headerRow, columnMap, nil
	}
	return "", nil, 0, nil, apperrors.SourceMalformed("no sheet with an inventory header row found")
}

// findHeaderRow locates the first row that maps at least a category and a
// cost column, and returns the canonical column positions it defines.
func findHeaderRow(rows [][]string) (int, map[string]int) {
	limit := len(rows)
	if limit > headerSearchDepth {
		limit = headerSearchDepth
	}
	for i := 0; i < limit; i++ {
		columnMap := make(map[string]int)
		for j, header := range rows[i] {
			canonical, ok := headerAliases[NormalizeHeader(header)]
			if !ok {
				continue
			}
			if _, mapped := columnMap[canonical]; !mapped {
				columnMap[canonical] = j
			}
		}
		if _, hasCategory := columnMap[ColCategory]; !hasCategory {
			continue
		}
		if _, hasCost := columnMap[ColCost]; !hasCost {
			continue
		}
		return i, columnMap
	}
	return -1, nil
}

// missingColumns returns the required columns absent from the map.
func missingColumns(columnMap map[string]int) []string {
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columnMap[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// sortedColumns returns the mapped canonical columns in a fixed canonical
// order, independent of where each header sits in the sheet.
func sortedColumns(columnMap map[string]int) []string {
	cols := make([]string, 0, len(columnMap))
	for _, col := range []string{ColName, ColCategory, ColCost, ColResponsible, ColInventoryNumber, ColCostCenter, ColStatus, ColItemType} {
		if _, ok := columnMap[col]; ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// NormalizeHeader converts a raw header cell to lowercase ascii snake_case:
// accents stripped, punctuation collapsed, words joined with underscores.
func NormalizeHeader(header string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, header)
	if err != nil {
		ascii = header
	}
	base := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(ascii, "\n", " ")))
	base = nonAlnum.ReplaceAllString(base, " ")
	return strings.Join(strings.Fields(base), "_")
}
