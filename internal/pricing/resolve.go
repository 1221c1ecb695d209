// Package pricing turns catalog records and cart lines into peso prices.
//
// Every price goes through the same two stages: the base amount is first
// converted to pesos with the quote that matches its currency, then the tax
// surcharge is applied to the converted amount. Nothing here rounds; rounding
// is a display concern (see FormatARS).
package pricing

import (
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/shopspring/decimal"
)

// Resolution is the outcome of pricing one item.
type Resolution struct {
	BasePrice      decimal.Decimal // Peso price before tax
	EffectivePrice decimal.Decimal // Peso price including tax
	AppliedRate    decimal.Decimal // Quote used for the conversion
	Priced         bool            // False when the currency code is unknown
}

// Resolve prices a catalog product against the given rates.
func Resolve(p model.Product, rates model.ExchangeRates) Resolution {
	return ResolveTerms(p.Currency, p.Tax, p.Price, p.PriceForeign, rates)
}

// ResolveTerms is the two-stage computation shared by catalog and cart pricing.
// local is only read for peso products and foreign only for dollar products.
func ResolveTerms(currency model.Currency, tax model.TaxCode, local, foreign decimal.Decimal, rates model.ExchangeRates) Resolution {
	var base, rate decimal.Decimal

	switch currency {
	case model.CurrencyLocal:
		base = local
		rate = decimal.NewFromInt(1)
	case model.CurrencyBillete:
		base = foreign.Mul(rates.Billete)
		rate = rates.Billete
	case model.CurrencyDivisas:
		base = foreign.Mul(rates.Divisas)
		rate = rates.Divisas
	default:
		base = decimal.Zero
		rate = decimal.Zero
	}

	return Resolution{
		BasePrice:      base,
		EffectivePrice: base.Mul(tax.Multiplier()),
		AppliedRate:    rate,
		Priced:         currency.Known(),
	}
}

// Price attaches the resolved prices to p.
func Price(p model.Product, rates model.ExchangeRates) model.PricedProduct {
	res := Resolve(p, rates)

	baseLocal := decimal.Zero
	if p.Currency == model.CurrencyLocal {
		baseLocal = p.Price
	}

	return model.PricedProduct{
		Product:        p,
		BasePrice:      res.BasePrice,
		EffectivePrice: res.EffectivePrice,
		AppliedRate:    res.AppliedRate,
		BaseLocalPrice: baseLocal,
	}
}
