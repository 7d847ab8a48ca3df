package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const pricePlaces = 2

var hundred = decimal.NewFromInt(100) //nolint:gomnd

// GrossPrice returns net * (1 + provisionPercent/100), unrounded.
// Negative inputs are computed as given; non-finite inputs yield zero.
func GrossPrice(net, provisionPercent float64) decimal.Decimal {
	if !finite(net) || !finite(provisionPercent) {
		return decimal.Zero
	}

	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(provisionPercent).Div(hundred))

	return decimal.NewFromFloat(net).Mul(factor)
}

// FormatPrice renders an amount with exactly two decimals.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(pricePlaces)
}

// GrossPriceString is GrossPrice rendered for display and export.
func GrossPriceString(net, provisionPercent float64) string {
	return FormatPrice(GrossPrice(net, provisionPercent))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
