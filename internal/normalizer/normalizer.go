// Package normalizer turns raw spreadsheet rows into typed inventory items.
// It never drops a row for bad data alone: absence of cost or identifiers is
// itself a signal the metric engine reports on. Only rows without a category
// are excluded, with a count retained.
package normalizer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"assetpulse/internal/loader"
	"assetpulse/pkg/contracts/domain"
)

// Result is the outcome of normalizing one raw table. Item order matches
// row order in the source, so identical input always yields identical
// output.
type Result struct {
	Items            []domain.InventoryItem
	DroppedRows      int
	CoercionFailures int
}

// Normalizer cleans and types raw inventory rows.
type Normalizer struct {
	logger *slog.Logger
}

// New creates a normalizer with the given logger.
func New(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger.With(slog.String("component", "normalizer"))}
}

// Normalize converts the raw table into inventory items.
func (n *Normalizer) Normalize(ctx context.Context, table *loader.RawTable) Result {
	var res Result
	if table == nil {
		return res
	}

	for _, row := range table.Rows {
		label := strings.TrimSpace(row[loader.ColCategory])
		if label == "" {
			res.DroppedRows++
			continue
		}

		cost, failed := coerceCost(row[loader.ColCost])
		if failed {
			res.CoercionFailures++
		}

		item := domain.InventoryItem{
			Name:            strings.TrimSpace(row[loader.ColName]),
			Category:        CanonicalCategory(label),
			CategoryLabel:   label,
			Cost:            cost,
			Responsible:     cleanIdentifier(row[loader.ColResponsible]),
			InventoryNumber: cleanInventoryNumber(row[loader.ColInventoryNumber]),
			CostCenter:      cleanIdentifier(row[loader.ColCostCenter]),
			Status:          strings.TrimSpace(row[loader.ColStatus]),
		}
		item.Priority = classifyPriority(item.Category, CanonicalCategory(row[loader.ColItemType]))

		res.Items = append(res.Items, item)
	}

	n.logger.InfoContext(ctx, "normalized inventory rows",
		slog.Int("items", len(res.Items)),
		slog.Int("dropped_rows", res.DroppedRows),
		slog.Int("coercion_failures", res.CoercionFailures))

	return res
}

// coerceCost parses a raw cost cell into a nullable decimal. Empty cells are
// null without being coercion failures; unparseable or negative values are
// null AND counted as failures. The "1.234,56", "1,234.56", and "1234.56"
// notations are all accepted, with an optional R$ prefix.
func coerceCost(raw string) (decimal.NullDecimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.NullDecimal{}, false
	}

	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(s, "R$"), "r$"))
	s = strings.ReplaceAll(s, " ", "")

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		// Both separators present: the last one is the decimal point,
		// so "1.234,56" and "1,234.56" both parse as 1234.56
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Contains(s, ","):
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.NullDecimal{}, true
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, false
}

// cleanIdentifier trims the value, treating empty as null.
func cleanIdentifier(raw string) string {
	return strings.TrimSpace(raw)
}

// cleanInventoryNumber trims the value and nulls out the "sem inventário"
// placeholder some exports use for missing numbers.
func cleanInventoryNumber(raw string) string {
	v := strings.TrimSpace(raw)
	if strings.HasPrefix(CanonicalCategory(v), "sem_") {
		return ""
	}
	return v
}

// CanonicalCategory lowercases a label and strips accents and punctuation,
// so "Licença Premium" and "licenca premium" share one key.
func CanonicalCategory(label string) string {
	key := loader.NormalizeHeader(label)
	switch {
	case strings.Contains(key, "licenca"):
		return domain.CategoryPremiumLicense
	case key == "mac" || strings.HasPrefix(key, "mac_") || strings.Contains(key, "macbook"):
		return domain.CategoryMac
	}
	return key
}

// essentialCategories lists the mid-tier equipment classes.
var essentialCategories = map[string]bool{
	domain.CategoryComputer: true,
	domain.CategoryPhone:    true,
	domain.CategoryMonitor:  true,
	domain.CategoryPrinter:  true,
}

// classifyPriority buckets an item for budget review: the reference-rate
// categories are premium, core equipment is essential, the rest is not.
func classifyPriority(category, itemType string) domain.Priority {
	if category == domain.CategoryMac || category == domain.CategoryPremiumLicense {
		return domain.PriorityPremium
	}
	if essentialCategories[category] || essentialCategories[itemType] {
		return domain.PriorityEssential
	}
	return domain.PriorityNonEssential
}
