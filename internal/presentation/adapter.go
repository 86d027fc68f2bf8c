// Package presentation shapes metric snapshots into the series, formatted
// figures, and narrative strings the rendering layer binds to widgets. The
// adapter is a pure function of the snapshot: no I/O, no clock, no
// randomness.
package presentation

import (
	"fmt"
	"strings"
	"time"

	"assetpulse/pkg/contracts/domain"
)

// Series names the rendering layer can request individually.
const (
	SeriesSpendByCategory    = "spend_by_category"
	SeriesReferenceFigures   = "depreciation_reference"
	SeriesCostCenters        = "cost_centers"
	SeriesStatusDistribution = "status_distribution"
	SeriesAccessories        = "accessories"
	SeriesPriorityBreakdown  = "priority_breakdown"
)

// Point is one (label, value) pair of a chart series, with the value
// pre-formatted for display.
type Point struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// Series is an ordered list of chart points, largest value first.
type Series []Point

// Payload is the complete presentation-ready view of one snapshot. It is
// stable and serializable: the rendering layer binds series to charts and
// placeholder keys to text blocks without further computation.
type Payload struct {
	GeneratedAt time.Time         `json:"generated_at"`
	NoData      bool              `json:"no_data"`
	ItemCount   int               `json:"item_count"`
	Series      map[string]Series `json:"series"`
	Figures     map[string]string `json:"figures"`
	Narratives  map[string]string `json:"narratives"`
}

// Adapter shapes snapshots into payloads.
type Adapter struct{}

// NewAdapter creates a presentation adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Shape converts a snapshot into its presentation payload. Identical
// snapshots always produce identical payloads.
func (a *Adapter) Shape(snapshot *domain.MetricSnapshot) *Payload {
	p := &Payload{
		GeneratedAt: snapshot.GeneratedAt,
		NoData:      snapshot.NoData,
		ItemCount:   snapshot.ItemCount,
		Series:      make(map[string]Series),
		Figures:     make(map[string]string),
		Narratives:  make(map[string]string),
	}

	p.Series[SeriesSpendByCategory] = categorySeries(snapshot.Categories)
	p.Series[SeriesReferenceFigures] = referenceSeries(snapshot.Reference)
	p.Series[SeriesCostCenters] = costCenterSeries(snapshot.CostCenters)
	p.Series[SeriesStatusDistribution] = statusSeries(snapshot.Statuses)
	p.Series[SeriesAccessories] = accessorySeries(snapshot.Categories)
	p.Series[SeriesPriorityBreakdown] = prioritySeries(snapshot.Priorities)

	a.fillFigures(p, snapshot)
	a.fillNarratives(p, snapshot)

	return p
}

// categorySeries maps per-category totals onto chart points. The snapshot
// already orders them by descending total.
func categorySeries(categories []domain.CategoryTotal) Series {
	s := make(Series, 0, len(categories))
	for _, c := range categories {
		v := c.Total.InexactFloat64()
		s = append(s, Point{Label: c.Label, Value: v, Formatted: FormatBRL(c.Total)})
	}
	return s
}

// referenceSeries charts the fixed reference depreciation of the override
// categories.
func referenceSeries(figures []domain.ReferenceFigure) Series {
	s := make(Series, 0, len(figures))
	for _, f := range figures {
		s = append(s, Point{Label: f.Label, Value: f.Reference.InexactFloat64(), Formatted: FormatBRL(f.Reference)})
	}
	return s
}

func costCenterSeries(stats domain.CostCenterStats) Series {
	s := make(Series, 0, len(stats.Centers))
	for _, c := range stats.Centers {
		s = append(s, Point{Label: c.Center, Value: c.Total.InexactFloat64(), Formatted: FormatBRL(c.Total)})
	}
	return s
}

func statusSeries(stats domain.StatusStats) Series {
	s := make(Series, 0, len(stats.Counts))
	for _, c := range stats.Counts {
		s = append(s, Point{Label: c.Status, Value: float64(c.Items), Formatted: FormatCount(c.Items)})
	}
	return s
}

// prioritySeries charts spend per budget-review priority class, in the
// snapshot's fixed premium-first order.
func prioritySeries(stats domain.PriorityStats) Series {
	s := make(Series, 0, len(stats.Breakdown))
	for _, p := range stats.Breakdown {
		s = append(s, Point{Label: p.Label, Value: p.Total.InexactFloat64(), Formatted: FormatBRL(p.Total)})
	}
	return s
}

// accessorySeries filters the category totals down to the fixed low-cost
// accessory set, preserving the descending order.
func accessorySeries(categories []domain.CategoryTotal) Series {
	var s Series
	for _, c := range categories {
		if !domain.LowCostAccessoryCategories[c.Category] {
			continue
		}
		s = append(s, Point{Label: c.Label, Value: c.Total.InexactFloat64(), Formatted: FormatBRL(c.Total)})
	}
	return s
}

// fillFigures populates the formatted key-figure placeholders.
func (a *Adapter) fillFigures(p *Payload, snapshot *domain.MetricSnapshot) {
	p.Figures["total_spend"] = FormatBRL(snapshot.TotalSpend)
	p.Figures["item_count"] = FormatCount(snapshot.ItemCount)
	p.Figures["gap_count"] = FormatCount(snapshot.Traceability.GapCount)
	p.Figures["gap_percent"] = FormatPercent(snapshot.Traceability.GapRatio)
	p.Figures["accessory_total"] = FormatBRL(snapshot.Accessories.Total)
	p.Figures["accessory_count"] = FormatCount(snapshot.Accessories.Items)
	p.Figures["accessory_share_percent"] = FormatPercent(snapshot.Accessories.ShareOfSpend)
	p.Figures["idle_percent"] = FormatPercent(snapshot.Statuses.IdleShare)
	p.Figures["premium_share_percent"] = FormatPercent(snapshot.Priorities.PremiumShare)
	p.Figures["top_centers_share_percent"] = FormatPercent(snapshot.CostCenters.TopShare)
	p.Figures["dropped_rows"] = fmt.Sprintf("%d", snapshot.DroppedRows)

	for _, f := range snapshot.Reference {
		p.Figures["reference_"+f.Category] = FormatBRL(f.Reference)
		p.Figures["raw_"+f.Category] = FormatBRL(f.RawTotal)
	}
}

// fillNarratives populates the short interpretation texts shown next to the
// charts. With no data every narrative says so instead of quoting zeros.
func (a *Adapter) fillNarratives(p *Payload, snapshot *domain.MetricSnapshot) {
	if snapshot.NoData {
		const empty = "Sem dados no inventário para este recorte."
		p.Narratives["traceability"] = empty
		p.Narratives["accessories"] = empty
		p.Narratives["cost_centers"] = empty
		p.Narratives["idle"] = empty
		p.Narratives["reference"] = empty
		p.Narratives["priority"] = empty
		return
	}

	p.Narratives["traceability"] = fmt.Sprintf(
		"%s dos itens não possuem responsável ou número de inventário (%s de %s).",
		FormatPercent(snapshot.Traceability.GapRatio),
		FormatCount(snapshot.Traceability.GapCount),
		FormatCount(snapshot.ItemCount))

	p.Narratives["accessories"] = fmt.Sprintf(
		"Acessórios de baixo custo somam %s (%s), ou %s do gasto total — pequenos individualmente, relevantes em conjunto.",
		FormatBRL(snapshot.Accessories.Total),
		FormatCount(snapshot.Accessories.Items),
		FormatPercent(snapshot.Accessories.ShareOfSpend))

	if len(snapshot.CostCenters.TopNames) > 0 {
		p.Narratives["cost_centers"] = fmt.Sprintf(
			"Os centros %s concentram %s do valor imobilizado.",
			strings.Join(snapshot.CostCenters.TopNames, ", "),
			FormatPercent(snapshot.CostCenters.TopShare))
	} else {
		p.Narratives["cost_centers"] = "Nenhum item possui centro de custo atribuído."
	}

	p.Narratives["priority"] = fmt.Sprintf(
		"Itens premium controlados concentram %s do gasto total; o restante se divide entre essenciais e não essenciais.",
		FormatPercent(snapshot.Priorities.PremiumShare))

	p.Narratives["idle"] = fmt.Sprintf(
		"%s dos ativos estão ociosos. Antes de qualquer compra, o plano é realocar.",
		FormatPercent(snapshot.Statuses.IdleShare))

	if len(snapshot.Reference) > 0 {
		parts := make([]string, 0, len(snapshot.Reference))
		for _, f := range snapshot.Reference {
			parts = append(parts, fmt.Sprintf("%s: %s/ano", f.Label, FormatBRL(f.Reference)))
		}
		p.Narratives["reference"] = "Depreciação de referência — " + strings.Join(parts, "; ") + "."
	} else {
		p.Narratives["reference"] = "Nenhuma categoria de referência presente no inventário."
	}
}
