package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SourceFingerprint identifies the exact source file a snapshot was computed
// from. Path plus modification time keys the snapshot cache: a touched file
// is a different source.
type SourceFingerprint struct {
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
	Size    int64     `json:"size"`
}

// Key returns the cache key for this fingerprint.
func (f SourceFingerprint) Key() string {
	return fmt.Sprintf("%s|%d|%d", f.Path, f.ModTime.UnixNano(), f.Size)
}

// MetricSnapshot is the immutable result of one pipeline run over the source
// spreadsheet. Everything the rendering layer shows derives from one
// snapshot; nothing is mutated after Compute.
type MetricSnapshot struct {
	GeneratedAt      time.Time         `json:"generated_at"`
	Source           SourceFingerprint `json:"source"`
	ItemCount        int               `json:"item_count"`
	DroppedRows      int               `json:"dropped_rows"`
	CoercionFailures int               `json:"coercion_failures"`
	// NoData is set when zero valid items survived normalization. All
	// ratios report 0 with this flag rather than dividing by zero.
	NoData bool `json:"no_data"`

	TotalSpend   decimal.Decimal    `json:"total_spend"`
	Categories   []CategoryTotal    `json:"categories"`
	Reference    []ReferenceFigure  `json:"reference"`
	Traceability TraceabilityStats  `json:"traceability"`
	Accessories  AccessoryStats     `json:"accessories"`
	CostCenters  CostCenterStats    `json:"cost_centers"`
	Statuses     StatusStats        `json:"statuses"`
	Priorities   PriorityStats      `json:"priorities"`
}

// CategoryTotal is the aggregate spend of one category. Categories with zero
// items are omitted entirely.
type CategoryTotal struct {
	Category    string          `json:"category"`
	Label       string          `json:"label"`
	Total       decimal.Decimal `json:"total"`
	Items       int             `json:"items"`
	UnknownCost int             `json:"unknown_cost"`
}

// ReferenceFigure reports both numbers for a reference-rate category: the
// raw spreadsheet-derived total and the fixed reference depreciation
// (rate × item count). The reference figure is published alongside, never
// instead of, the raw total, so both stay inspectable.
type ReferenceFigure struct {
	Category  string          `json:"category"`
	Label     string          `json:"label"`
	Items     int             `json:"items"`
	Rate      decimal.Decimal `json:"rate"`
	Reference decimal.Decimal `json:"reference"`
	RawTotal  decimal.Decimal `json:"raw_total"`
}

// TraceabilityStats counts items lacking a responsible party or inventory
// number. GapRatio is always in [0, 1]; with zero items it is 0 and NoData
// is set.
type TraceabilityStats struct {
	GapCount int     `json:"gap_count"`
	GapRatio float64 `json:"gap_ratio"`
	NoData   bool    `json:"no_data"`
}

// AccessoryStats aggregates the fixed low-cost accessory category set.
// ShareOfSpend is the aggregate's share of total spend across all
// categories, 0 with NoData set when total spend is zero.
type AccessoryStats struct {
	Total        decimal.Decimal `json:"total"`
	Items        int             `json:"items"`
	ShareOfSpend float64         `json:"share_of_spend"`
	NoData       bool            `json:"no_data"`
}

// CostCenterTotal is the aggregate spend booked to one cost center.
type CostCenterTotal struct {
	Center string          `json:"center"`
	Total  decimal.Decimal `json:"total"`
	Items  int             `json:"items"`
}

// CostCenterStats ranks cost centers by spend. TopShare is the share of
// total spend concentrated in the top two centers.
type CostCenterStats struct {
	Centers  []CostCenterTotal `json:"centers"`
	TopNames []string          `json:"top_names"`
	TopShare float64           `json:"top_share"`
}

// PriorityTotal is the aggregate spend of one priority class.
type PriorityTotal struct {
	Priority Priority        `json:"priority"`
	Label    string          `json:"label"`
	Total    decimal.Decimal `json:"total"`
	Items    int             `json:"items"`
}

// PriorityStats breaks spend down by budget-review priority, in fixed
// premium, essential, non-essential order. PremiumShare is the premium
// class's share of total spend, 0 with NoData set when total spend is zero.
type PriorityStats struct {
	Breakdown    []PriorityTotal `json:"breakdown"`
	PremiumShare float64         `json:"premium_share"`
	NoData       bool            `json:"no_data"`
}

// StatusCount is the item count for one status label.
type StatusCount struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
}

// StatusStats breaks items down by usage status. IdleShare is the fraction
// of items marked idle.
type StatusStats struct {
	Counts    []StatusCount `json:"counts"`
	IdleCount int           `json:"idle_count"`
	IdleShare float64       `json:"idle_share"`
}
