package presentation

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatBRL renders a decimal amount as Brazilian currency with two
// decimals and pt-BR separators, e.g. "R$1.234,56".
func FormatBRL(d decimal.Decimal) string {
	minor := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(minor, money.BRL).Display()
}

// FormatPercent renders a [0,1] ratio as a percentage with one decimal and
// a pt-BR decimal comma, e.g. 0.667 -> "66,7%".
func FormatPercent(ratio float64) string {
	return strings.Replace(fmt.Sprintf("%.1f%%", ratio*100), ".", ",", 1)
}

// FormatCount renders an item count with its unit, e.g. "3 itens".
func FormatCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d itens", n)
}
