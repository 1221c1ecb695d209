package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ExchangeRates holds the two dollar quotes typed by the user.
type ExchangeRates struct {
	Billete decimal.Decimal
	Divisas decimal.Decimal
}

// ParseRates builds ExchangeRates from the raw text of both rate fields.
func ParseRates(billete, divisas string) ExchangeRates {
	return ExchangeRates{
		Billete: ParseRate(billete),
		Divisas: ParseRate(divisas),
	}
}

// ParseRate coerces free-form rate text to a non-negative decimal.
// Empty, unparsable and negative input all yield zero; a comma is accepted
// as the decimal separator.
func ParseRate(text string) decimal.Decimal {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero
	}
	if !strings.Contains(text, ".") {
		text = strings.Replace(text, ",", ".", 1)
	}

	rate, err := decimal.NewFromString(text)
	if err != nil || rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}
