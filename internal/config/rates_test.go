package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetpulse/pkg/contracts/domain"
)

func writeRatesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rates.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadReferenceRates_Defaults(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.toml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates, err := LoadReferenceRates(tt.path)
			require.NoError(t, err)

			mac, ok := rates.Lookup(domain.CategoryMac)
			require.True(t, ok)
			assert.True(t, mac.Annual.Equal(decimal.NewFromInt(2145)))

			lic, ok := rates.Lookup(domain.CategoryPremiumLicense)
			require.True(t, ok)
			assert.True(t, lic.Annual.Equal(decimal.NewFromInt(1200)))
		})
	}
}

func TestLoadReferenceRates_FromFile(t *testing.T) {
	path := writeRatesFile(t, `
[[rate]]
category = "mac"
label = "Macs premium"
annual = 2300.0

[[rate]]
category = "licenca_premium"
annual = 1100.0
`)

	rates, err := LoadReferenceRates(path)
	require.NoError(t, err)
	assert.Equal(t, 2, rates.Len())

	mac, ok := rates.Lookup("mac")
	require.True(t, ok)
	assert.True(t, mac.Annual.Equal(decimal.NewFromInt(2300)))
	assert.Equal(t, "Macs premium", mac.Label)

	lic, ok := rates.Lookup("licenca_premium")
	require.True(t, ok)
	assert.Equal(t, "licenca_premium", lic.Label, "label falls back to the category key")
}

func TestLoadReferenceRates_ParseErrorIsFatal(t *testing.T) {
	path := writeRatesFile(t, `this is not toml [[[`)

	_, err := LoadReferenceRates(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse rates file")
}

func TestLoadReferenceRates_InvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing category",
			content: `
[[rate]]
label = "sem categoria"
annual = 100.0
`,
		},
		{
			name: "negative rate",
			content: `
[[rate]]
category = "mac"
annual = -5.0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReferenceRates(writeRatesFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadReferenceRates_EmptyFileUsesDefaults(t *testing.T) {
	rates, err := LoadReferenceRates(writeRatesFile(t, ""))
	require.NoError(t, err)

	_, ok := rates.Lookup(domain.CategoryMac)
	assert.True(t, ok)
}
