package normalizer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetpulse/internal/loader"
	"assetpulse/pkg/contracts/domain"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := New(nil)

	table := &loader.RawTable{
		SheetName: "Inventário",
		Rows: []loader.RawRow{
			{
				loader.ColName:            "MacBook Pro",
				loader.ColCategory:        "Mac",
				loader.ColCost:            "R$ 9.500,00",
				loader.ColResponsible:     "Ana",
				loader.ColInventoryNumber: "INV-001",
				loader.ColCostCenter:      "TI",
				loader.ColStatus:          "Em uso",
			},
			{
				loader.ColName:            "Mouse sem fio",
				loader.ColCategory:        "Mouse",
				loader.ColCost:            "45",
				loader.ColInventoryNumber: "Sem inventário",
				loader.ColCostCenter:      "TI",
				loader.ColStatus:          "Sem Uso",
			},
			{
				// no category, dropped
				loader.ColName: "misterioso",
				loader.ColCost: "10",
			},
		},
	}

	res := n.Normalize(context.Background(), table)

	assert.Equal(t, 1, res.DroppedRows)
	assert.Equal(t, 0, res.CoercionFailures)
	require.Len(t, res.Items, 2)

	mac := res.Items[0]
	assert.Equal(t, domain.CategoryMac, mac.Category)
	assert.Equal(t, "Mac", mac.CategoryLabel)
	require.True(t, mac.Cost.Valid)
	assert.True(t, mac.Cost.Decimal.Equal(decimal.NewFromInt(9500)))
	assert.Equal(t, domain.PriorityPremium, mac.Priority)
	assert.False(t, mac.Untraceable())

	mouse := res.Items[1]
	assert.Equal(t, domain.CategoryMouse, mouse.Category)
	assert.Empty(t, mouse.InventoryNumber, "placeholder inventory number nulled out")
	assert.True(t, mouse.Untraceable())
	assert.Equal(t, domain.PriorityNonEssential, mouse.Priority)
}

func TestNormalizer_Normalize_NilTable(t *testing.T) {
	res := New(nil).Normalize(context.Background(), nil)
	assert.Empty(t, res.Items)
	assert.Zero(t, res.DroppedRows)
}

func TestCoerceCost(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		want       string
		wantNull   bool
		wantFailed bool
	}{
		{name: "plain integer", raw: "45", want: "45"},
		{name: "dot decimal", raw: "1234.56", want: "1234.56"},
		{name: "comma decimal", raw: "1234,56", want: "1234.56"},
		{name: "portuguese thousands", raw: "1.234,56", want: "1234.56"},
		{name: "us thousands", raw: "1,234.56", want: "1234.56"},
		{name: "us millions", raw: "1,234,567.89", want: "1234567.89"},
		{name: "portuguese millions", raw: "1.234.567,89", want: "1234567.89"},
		{name: "currency prefix", raw: "R$ 2.145,00", want: "2145"},
		{name: "empty is null not failure", raw: "", wantNull: true},
		{name: "spaces only", raw: "   ", wantNull: true},
		{name: "garbage", raw: "n/a", wantNull: true, wantFailed: true},
		{name: "negative", raw: "-10", wantNull: true, wantFailed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, failed := coerceCost(tt.raw)
			assert.Equal(t, tt.wantFailed, failed)
			if tt.wantNull {
				assert.False(t, got.Valid)
				return
			}
			require.True(t, got.Valid)
			assert.True(t, got.Decimal.Equal(decimal.RequireFromString(tt.want)),
				"got %s", got.Decimal)
		})
	}
}

func TestNormalizer_CoercionFailuresCounted(t *testing.T) {
	n := New(nil)
	table := &loader.RawTable{Rows: []loader.RawRow{
		{loader.ColCategory: "Mouse", loader.ColCost: "abc"},
		{loader.ColCategory: "Teclado", loader.ColCost: "-1"},
		{loader.ColCategory: "Monitor", loader.ColCost: ""},
	}}

	res := n.Normalize(context.Background(), table)
	require.Len(t, res.Items, 3)
	assert.Equal(t, 2, res.CoercionFailures)
	for _, item := range res.Items {
		assert.False(t, item.Cost.Valid)
		assert.True(t, item.CostOrZero().IsZero())
	}
}

func TestCanonicalCategory(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Mac", domain.CategoryMac},
		{"MacBook Pro", domain.CategoryMac},
		{"Licença Premium", domain.CategoryPremiumLicense},
		{"licenca premium", domain.CategoryPremiumLicense},
		{"Mouse", domain.CategoryMouse},
		{"Teclado", domain.CategoryKeyboard},
		{"Fonte", domain.CategoryPowerSupply},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalCategory(tt.label))
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name     string
		category string
		itemType string
		want     domain.Priority
	}{
		{"mac is premium", domain.CategoryMac, "", domain.PriorityPremium},
		{"license is premium", domain.CategoryPremiumLicense, "", domain.PriorityPremium},
		{"computer is essential", domain.CategoryComputer, "", domain.PriorityEssential},
		{"essential via item type", "notebook_dell", domain.CategoryComputer, domain.PriorityEssential},
		{"mouse is non-essential", domain.CategoryMouse, "", domain.PriorityNonEssential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyPriority(tt.category, tt.itemType))
		})
	}
}
