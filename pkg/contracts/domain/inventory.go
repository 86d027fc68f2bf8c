package domain

import (
	"github.com/shopspring/decimal"
)

// InventoryItem represents one normalized row of the source inventory
// spreadsheet. Items are immutable after normalization.
type InventoryItem struct {
	Name            string              `json:"name"`
	Category        string              `json:"category" validate:"required"`
	CategoryLabel   string              `json:"category_label"`
	Cost            decimal.NullDecimal `json:"cost"`
	Responsible     string              `json:"responsible,omitempty"`
	InventoryNumber string              `json:"inventory_number,omitempty"`
	CostCenter      string              `json:"cost_center,omitempty"`
	Status          string              `json:"status,omitempty"`
	Priority        Priority            `json:"priority"`
}

// Untraceable reports whether the item lacks either an assigned responsible
// party or an inventory number. Either gap alone makes the item untraceable.
func (it InventoryItem) Untraceable() bool {
	return it.Responsible == "" || it.InventoryNumber == ""
}

// CostOrZero returns the item cost, treating unknown cost as zero.
// Unknown-cost items are counted separately by the metric engine.
func (it InventoryItem) CostOrZero() decimal.Decimal {
	if !it.Cost.Valid {
		return decimal.Zero
	}
	return it.Cost.Decimal
}

// Priority classifies an item for budget review purposes.
type Priority string

const (
	// PriorityPremium covers the reference-rate categories (Macs and
	// premium licenses) whose published figures track an external report.
	PriorityPremium Priority = "premium"
	// PriorityEssential covers core work equipment.
	PriorityEssential Priority = "essential"
	// PriorityNonEssential covers everything else.
	PriorityNonEssential Priority = "non_essential"
)

// Label returns the display name of the priority class.
func (p Priority) Label() string {
	switch p {
	case PriorityPremium:
		return "Premium controlado"
	case PriorityEssential:
		return "Essencial"
	case PriorityNonEssential:
		return "Não essencial"
	}
	return string(p)
}

// Canonical category keys produced by the normalizer. Keys are lowercase
// ascii with accents stripped, so "Licença Premium" and "licenca premium"
// collapse to the same key.
const (
	CategoryMac            = "mac"
	CategoryPremiumLicense = "licenca_premium"
	CategoryMouse          = "mouse"
	CategoryKeyboard       = "teclado"
	CategoryAdapter        = "adaptador"
	CategoryPowerSupply    = "fonte"
	CategoryComputer       = "computador"
	CategoryPhone          = "telefone"
	CategoryMonitor        = "monitor"
	CategoryPrinter        = "impressora"
)

// LowCostAccessoryCategories is the fixed set of peripheral categories
// aggregated to show the cumulative budget impact of individually cheap
// items.
var LowCostAccessoryCategories = map[string]bool{
	CategoryMouse:       true,
	CategoryKeyboard:    true,
	CategoryAdapter:     true,
	CategoryPowerSupply: true,
}

// StatusIdle is the status label marking items that are owned but unused.
const StatusIdle = "Sem Uso"
