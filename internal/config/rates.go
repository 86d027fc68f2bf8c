package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"assetpulse/pkg/contracts/domain"
)

// ratesFile is the TOML shape of the reference-rate override table.
type ratesFile struct {
	Rate []rateEntry `toml:"rate"`
}

type rateEntry struct {
	Category string  `toml:"category"`
	Label    string  `toml:"label"`
	Annual   float64 `toml:"annual"`
}

// LoadReferenceRates reads the reference-rate override table from a TOML
// file. A missing file is not an error: the compiled-in defaults from the
// prior diagnostic report apply. A present but unparseable file is an
// error, since silently falling back would change published figures.
func LoadReferenceRates(path string) (domain.ReferenceRates, error) {
	if path == "" {
		return domain.DefaultReferenceRates(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.DefaultReferenceRates(), nil
		}
		return domain.ReferenceRates{}, fmt.Errorf("read rates file: %w", err)
	}

	var rf ratesFile
	if err := toml.Unmarshal(data, &rf); err != nil {
		return domain.ReferenceRates{}, fmt.Errorf("parse rates file %s: %w", path, err)
	}

	rates := make([]domain.ReferenceRate, 0, len(rf.Rate))
	for _, e := range rf.Rate {
		if e.Category == "" {
			return domain.ReferenceRates{}, fmt.Errorf("rates file %s: rate entry missing category", path)
		}
		if e.Annual < 0 {
			return domain.ReferenceRates{}, fmt.Errorf("rates file %s: negative annual rate for %s", path, e.Category)
		}
		label := e.Label
		if label == "" {
			label = e.Category
		}
		rates = append(rates, domain.ReferenceRate{
			Category: e.Category,
			Label:    label,
			Annual:   decimal.NewFromFloat(e.Annual),
		})
	}

	if len(rates) == 0 {
		return domain.DefaultReferenceRates(), nil
	}
	return domain.NewReferenceRates(rates...), nil
}
