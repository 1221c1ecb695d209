package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency identifies how a product's base amount is expressed.
type Currency string

const (
	// CurrencyLocal is a product priced directly in pesos.
	CurrencyLocal Currency = "1"
	// CurrencyBillete is a dollar product converted at the cash (billete) rate.
	CurrencyBillete Currency = "2"
	// CurrencyDivisas is a dollar product converted at the wire (divisas) rate.
	CurrencyDivisas Currency = "3"
)

// ParseCurrency trims a raw feed code. Unrecognized codes are kept verbatim
// so they can be reported; see Known.
func ParseCurrency(raw string) Currency {
	return Currency(strings.TrimSpace(raw))
}

// Known reports whether c is one of the priced currency codes.
func (c Currency) Known() bool {
	switch c {
	case CurrencyLocal, CurrencyBillete, CurrencyDivisas:
		return true
	}
	return false
}

// Foreign reports whether the base amount is in dollars.
func (c Currency) Foreign() bool {
	return c == CurrencyBillete || c == CurrencyDivisas
}

// Label is the short name shown next to a price.
func (c Currency) Label() string {
	switch c {
	case CurrencyLocal:
		return "ARS"
	case CurrencyBillete:
		return "USD Billete"
	case CurrencyDivisas:
		return "USD Divisas"
	default:
		return "-"
	}
}

// TaxCode is the surcharge category (TES) of a product.
type TaxCode string

const (
	// TaxNone applies no surcharge.
	TaxNone TaxCode = ""
	// Tax105 adds 10.5% IVA.
	Tax105 TaxCode = "501"
	// Tax21 adds 21% IVA.
	Tax21 TaxCode = "503"
)

var (
	multiplier105 = decimal.RequireFromString("1.105")
	multiplier21  = decimal.RequireFromString("1.21")
)

// ParseTaxCode trims a raw feed code.
func ParseTaxCode(raw string) TaxCode {
	return TaxCode(strings.TrimSpace(raw))
}

// Multiplier returns the factor applied to a converted price.
// Unknown codes carry no surcharge.
func (t TaxCode) Multiplier() decimal.Decimal {
	switch t {
	case Tax105:
		return multiplier105
	case Tax21:
		return multiplier21
	default:
		return decimal.NewFromInt(1)
	}
}

// Label describes the surcharge for display.
func (t TaxCode) Label() string {
	switch t {
	case Tax105:
		return "IVA 10,5%"
	case Tax21:
		return "IVA 21%"
	default:
		return "-"
	}
}
