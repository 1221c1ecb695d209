package pricing

import (
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/shopspring/decimal"
)

// PricedLine is a cart line priced at the current rates.
type PricedLine struct {
	model.CartLine

	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// CartSummary is the rendered state of the whole cart.
type CartSummary struct {
	Lines []PricedLine
	Total decimal.Decimal
	Units int
}

// UnitPrice prices one unit of a cart line from its captured inputs.
func UnitPrice(line model.CartLine, rates model.ExchangeRates) decimal.Decimal {
	return ResolveTerms(line.Currency, line.Tax, line.BasePriceLocal, line.BasePriceForeign, rates).EffectivePrice
}

// LineTotal is the unit price times the line quantity.
func LineTotal(line model.CartLine, rates model.ExchangeRates) decimal.Decimal {
	return UnitPrice(line, rates).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// CartTotal sums LineTotal over lines.
func CartTotal(lines []model.CartLine, rates model.ExchangeRates) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineTotal(line, rates))
	}
	return total
}

// PriceCart prices every line and the total in one pass.
func PriceCart(lines []model.CartLine, rates model.ExchangeRates) CartSummary {
	summary := CartSummary{
		Lines: make([]PricedLine, 0, len(lines)),
		Total: decimal.Zero,
	}

	for _, line := range lines {
		unit := UnitPrice(line, rates)
		subtotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))

		summary.Lines = append(summary.Lines, PricedLine{
			CartLine:  line,
			UnitPrice: unit,
			Subtotal:  subtotal,
		})
		summary.Total = summary.Total.Add(subtotal)
		summary.Units += line.Quantity
	}

	return summary
}
