package domain

import (
	"github.com/shopspring/decimal"
)

// ReferenceRate is a fixed annual depreciation figure substituted for the
// computed figure of one category. The published numbers for these
// categories must match the external diagnostic report exactly, regardless
// of what the spreadsheet contains, so the rate is configuration data and
// never derived from the source file.
type ReferenceRate struct {
	Category string          `json:"category"`
	Label    string          `json:"label"`
	Annual   decimal.Decimal `json:"annual"`
}

// ReferenceRates is an ordered override table of category reference rates.
// Order is preserved so reports list reference categories the way the
// override file declares them.
type ReferenceRates struct {
	rates []ReferenceRate
	index map[string]int
}

// NewReferenceRates builds an override table from the given rates. Later
// duplicates of a category replace earlier ones.
func NewReferenceRates(rates ...ReferenceRate) ReferenceRates {
	rr := ReferenceRates{index: make(map[string]int, len(rates))}
	for _, r := range rates {
		if i, ok := rr.index[r.Category]; ok {
			rr.rates[i] = r
			continue
		}
		rr.index[r.Category] = len(rr.rates)
		rr.rates = append(rr.rates, r)
	}
	return rr
}

// DefaultReferenceRates returns the override table from the prior
// diagnostic report: Macs at 2145/year and premium licenses at 1200/year.
func DefaultReferenceRates() ReferenceRates {
	return NewReferenceRates(
		ReferenceRate{Category: CategoryMac, Label: "Macs premium", Annual: decimal.NewFromInt(2145)},
		ReferenceRate{Category: CategoryPremiumLicense, Label: "Licenças críticas", Annual: decimal.NewFromInt(1200)},
	)
}

// Lookup returns the rate for a category, if one is configured.
func (rr ReferenceRates) Lookup(category string) (ReferenceRate, bool) {
	i, ok := rr.index[category]
	if !ok {
		return ReferenceRate{}, false
	}
	return rr.rates[i], true
}

// All returns the configured rates in declaration order.
func (rr ReferenceRates) All() []ReferenceRate {
	out := make([]ReferenceRate, len(rr.rates))
	copy(out, rr.rates)
	return out
}

// Len returns the number of configured rates.
func (rr ReferenceRates) Len() int {
	return len(rr.rates)
}
