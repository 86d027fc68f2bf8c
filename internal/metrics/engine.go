// Package metrics computes the per-run metric snapshot from normalized
// inventory items. One Compute call is the whole batch: no state survives
// between runs.
package metrics

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"assetpulse/pkg/contracts/domain"
)

// Input carries everything one snapshot computation needs. Dropped and
// coercion counts come from the normalizer so the snapshot can report data
// quality alongside the figures.
type Input struct {
	Items            []domain.InventoryItem
	Rates            domain.ReferenceRates
	Source           domain.SourceFingerprint
	DroppedRows      int
	CoercionFailures int
}

// Engine computes metric snapshots.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewEngine creates a metric engine with the given logger.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger: logger.With(slog.String("component", "metric_engine")),
		now:    time.Now,
	}
}

// Compute aggregates the items into an immutable snapshot. With zero items
// every ratio is 0 and the NoData flags are set; nothing divides by zero.
func (e *Engine) Compute(ctx context.Context, in Input) *domain.MetricSnapshot {
	snapshot := &domain.MetricSnapshot{
		GeneratedAt:      e.now().UTC(),
		Source:           in.Source,
		ItemCount:        len(in.Items),
		DroppedRows:      in.DroppedRows,
		CoercionFailures: in.CoercionFailures,
		NoData:           len(in.Items) == 0,
	}

	groups := groupByCategory(in.Items)

	snapshot.TotalSpend = decimal.Zero
	for _, g := range groups {
		snapshot.TotalSpend = snapshot.TotalSpend.Add(g.Total)
	}
	snapshot.Categories = sortCategories(groups)

	snapshot.Reference = e.referenceFigures(groups, in.Rates)
	snapshot.Traceability = traceability(in.Items)
	snapshot.Accessories = accessories(in.Items, snapshot.TotalSpend)
	snapshot.CostCenters = costCenters(in.Items)
	snapshot.Statuses = statuses(in.Items)
	snapshot.Priorities = priorities(in.Items, snapshot.TotalSpend)

	e.logger.InfoContext(ctx, "computed metric snapshot",
		slog.Int("item_count", snapshot.ItemCount),
		slog.Int("category_count", len(snapshot.Categories)),
		slog.String("total_spend", snapshot.TotalSpend.String()),
		slog.Bool("no_data", snapshot.NoData))

	return snapshot
}

// groupByCategory sums cost per category, treating unknown cost as zero for
// the sum while counting it separately.
func groupByCategory(items []domain.InventoryItem) map[string]*domain.CategoryTotal {
	groups := make(map[string]*domain.CategoryTotal)
	for _, it := range items {
		g, ok := groups[it.Category]
		if !ok {
			g = &domain.CategoryTotal{
				Category: it.Category,
				Label:    it.CategoryLabel,
				Total:    decimal.Zero,
			}
			groups[it.Category] = g
		}
		g.Items++
		if it.Cost.Valid {
			g.Total = g.Total.Add(it.Cost.Decimal)
		} else {
			g.UnknownCost++
		}
	}
	return groups
}

// sortCategories orders groups by descending total, category key breaking
// ties so output is stable.
func sortCategories(groups map[string]*domain.CategoryTotal) []domain.CategoryTotal {
	out := make([]domain.CategoryTotal, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// referenceFigures reports, for every configured reference category present
// in the data, the fixed reference depreciation (rate × items) next to the
// raw spreadsheet total. The override is deliberate: these published
// figures must match the external diagnostic report no matter what the
// spreadsheet says.
func (e *Engine) referenceFigures(groups map[string]*domain.CategoryTotal, rates domain.ReferenceRates) []domain.ReferenceFigure {
	var figures []domain.ReferenceFigure
	for _, rate := range rates.All() {
		g, ok := groups[rate.Category]
		if !ok || g.Items == 0 {
			continue
		}
		figures = append(figures, domain.ReferenceFigure{
			Category:  rate.Category,
			Label:     rate.Label,
			Items:     g.Items,
			Rate:      rate.Annual,
			Reference: rate.Annual.Mul(decimal.NewFromInt(int64(g.Items))),
			RawTotal:  g.Total,
		})
	}
	return figures
}

// traceability counts items lacking a responsible party or inventory number.
func traceability(items []domain.InventoryItem) domain.TraceabilityStats {
	stats := domain.TraceabilityStats{NoData: len(items) == 0}
	for _, it := range items {
		if it.Untraceable() {
			stats.GapCount++
		}
	}
	if len(items) > 0 {
		stats.GapRatio = float64(stats.GapCount) / float64(len(items))
	}
	return stats
}

// accessories aggregates the fixed low-cost accessory category set and its
// share of total spend.
func accessories(items []domain.InventoryItem, totalSpend decimal.Decimal) domain.AccessoryStats {
	stats := domain.AccessoryStats{Total: decimal.Zero}
	for _, it := range items {
		if !domain.LowCostAccessoryCategories[it.Category] {
			continue
		}
		stats.Items++
		stats.Total = stats.Total.Add(it.CostOrZero())
	}
	if totalSpend.IsPositive() {
		stats.ShareOfSpend = stats.Total.Div(totalSpend).InexactFloat64()
	} else {
		stats.NoData = true
	}
	return stats
}

// costCenters ranks cost centers by spend and reports how much of it the
// top two concentrate. Items without a cost center are left out.
func costCenters(items []domain.InventoryItem) domain.CostCenterStats {
	groups := make(map[string]*domain.CostCenterTotal)
	centerSpend := decimal.Zero
	for _, it := range items {
		if it.CostCenter == "" {
			continue
		}
		g, ok := groups[it.CostCenter]
		if !ok {
			g = &domain.CostCenterTotal{Center: it.CostCenter, Total: decimal.Zero}
			groups[it.CostCenter] = g
		}
		g.Items++
		g.Total = g.Total.Add(it.CostOrZero())
		centerSpend = centerSpend.Add(it.CostOrZero())
	}

	stats := domain.CostCenterStats{}
	for _, g := range groups {
		stats.Centers = append(stats.Centers, *g)
	}
	sort.Slice(stats.Centers, func(i, j int) bool {
		if !stats.Centers[i].Total.Equal(stats.Centers[j].Total) {
			return stats.Centers[i].Total.GreaterThan(stats.Centers[j].Total)
		}
		return stats.Centers[i].Center < stats.Centers[j].Center
	})

	topTotal := decimal.Zero
	for i, c := range stats.Centers {
		if i >= 2 {
			break
		}
		stats.TopNames = append(stats.TopNames, c.Center)
		topTotal = topTotal.Add(c.Total)
	}
	if centerSpend.IsPositive() {
		stats.TopShare = topTotal.Div(centerSpend).InexactFloat64()
	}
	return stats
}

// priorityOrder fixes the breakdown order for reports.
var priorityOrder = []domain.Priority{
	domain.PriorityPremium,
	domain.PriorityEssential,
	domain.PriorityNonEssential,
}

// priorities breaks spend down by budget-review priority and measures how
// much of it the premium class (Macs and premium licenses) concentrates.
// Classes without items are omitted.
func priorities(items []domain.InventoryItem, totalSpend decimal.Decimal) domain.PriorityStats {
	groups := make(map[domain.Priority]*domain.PriorityTotal)
	for _, it := range items {
		g, ok := groups[it.Priority]
		if !ok {
			g = &domain.PriorityTotal{
				Priority: it.Priority,
				Label:    it.Priority.Label(),
				Total:    decimal.Zero,
			}
			groups[it.Priority] = g
		}
		g.Items++
		g.Total = g.Total.Add(it.CostOrZero())
	}

	stats := domain.PriorityStats{}
	premiumSpend := decimal.Zero
	for _, p := range priorityOrder {
		g, ok := groups[p]
		if !ok {
			continue
		}
		stats.Breakdown = append(stats.Breakdown, *g)
		if p == domain.PriorityPremium {
			premiumSpend = g.Total
		}
	}
	if totalSpend.IsPositive() {
		stats.PremiumShare = premiumSpend.Div(totalSpend).InexactFloat64()
	} else {
		stats.NoData = true
	}
	return stats
}

// statuses breaks items down by usage status and measures the idle share.
func statuses(items []domain.InventoryItem) domain.StatusStats {
	counts := make(map[string]int)
	stats := domain.StatusStats{}
	for _, it := range items {
		status := it.Status
		if status == "" {
			continue
		}
		counts[status]++
		if strings.EqualFold(status, domain.StatusIdle) {
			stats.IdleCount++
		}
	}
	for status, n := range counts {
		stats.Counts = append(stats.Counts, domain.StatusCount{Status: status, Items: n})
	}
	sort.Slice(stats.Counts, func(i, j int) bool {
		if stats.Counts[i].Items != stats.Counts[j].Items {
			return stats.Counts[i].Items > stats.Counts[j].Items
		}
		return stats.Counts[i].Status < stats.Counts[j].Status
	})
	if len(items) > 0 {
		stats.IdleShare = float64(stats.IdleCount) / float64(len(items))
	}
	return stats
}
