package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is one catalog record as supplied by the catalog feed.
type Product struct {
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	Brand        string          `json:"brand,omitempty"`
	Currency     Currency        `json:"currency"`
	Tax          TaxCode         `json:"tes,omitempty"`
	Price        decimal.Decimal `json:"price"`     // Peso amount, used when Currency is local
	PriceForeign decimal.Decimal `json:"price_usd"` // Dollar amount, used for billete/divisas
	Rate         decimal.Decimal `json:"rate"`      // Rate recorded by the feed; informational only
}

// PricedProduct is a Product with its price resolved against the current rates.
type PricedProduct struct {
	Product

	BasePrice      decimal.Decimal // Converted price before tax
	EffectivePrice decimal.Decimal // Final, tax-inclusive peso price
	AppliedRate    decimal.Decimal // 1 for local products, the quote used otherwise
	BaseLocalPrice decimal.Decimal // Product.Price for local products, zero otherwise
}

// productJSON tolerates the loose typing of spreadsheet exports, where codes
// and amounts show up as either strings or numbers.
type productJSON struct {
	Code         json.RawMessage `json:"code"`
	Description  json.RawMessage `json:"description"`
	Brand        json.RawMessage `json:"brand"`
	Currency     json.RawMessage `json:"currency"`
	Tax          json.RawMessage `json:"tes"`
	Price        json.RawMessage `json:"price"`
	PriceForeign json.RawMessage `json:"price_usd"`
	Rate         json.RawMessage `json:"rate"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw productJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var (
		decoded Product
		err     error
		s       string
	)
	if decoded.Code, err = flexString(raw.Code); err != nil {
		return fmt.Errorf("code: %w", err)
	}
	if decoded.Description, err = flexString(raw.Description); err != nil {
		return fmt.Errorf("description: %w", err)
	}
	if decoded.Brand, err = flexString(raw.Brand); err != nil {
		return fmt.Errorf("brand: %w", err)
	}
	if s, err = flexString(raw.Currency); err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	decoded.Currency = ParseCurrency(s)
	if s, err = flexString(raw.Tax); err != nil {
		return fmt.Errorf("tes: %w", err)
	}
	decoded.Tax = ParseTaxCode(s)
	if decoded.Price, err = flexDecimal(raw.Price); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if decoded.PriceForeign, err = flexDecimal(raw.PriceForeign); err != nil {
		return fmt.Errorf("price_usd: %w", err)
	}
	if decoded.Rate, err = flexDecimal(raw.Rate); err != nil {
		return fmt.Errorf("rate: %w", err)
	}

	*p = decoded
	return nil
}
