package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatARS renders an amount the way es-AR prints pesos: "$ 1.234,56".
func FormatARS(amount decimal.Decimal) string {
	return "$ " + FormatNumber(amount, 2)
}

// FormatRate renders a quote with two decimals, or "-" when it is zero.
func FormatRate(rate decimal.Decimal) string {
	if rate.IsZero() {
		return "-"
	}
	return FormatNumber(rate, 2)
}

// FormatNumber rounds to places and uses "." for thousands and "," for decimals.
func FormatNumber(amount decimal.Decimal, places int32) string {
	fixed := amount.StringFixed(places)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}
