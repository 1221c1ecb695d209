package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is one product in the cart. It captures the price inputs at add
// time; the price itself is always recomputed from the live rates.
type CartLine struct {
	Code             string          `json:"code"`
	Description      string          `json:"description"`
	Currency         Currency        `json:"currency"`
	Tax              TaxCode         `json:"tes,omitempty"`
	BasePriceLocal   decimal.Decimal `json:"price"`
	BasePriceForeign decimal.Decimal `json:"price_usd"`
	Quantity         int             `json:"quantity"`
}

// NewCartLine captures the price inputs of p with quantity 1.
func NewCartLine(p Product) CartLine {
	local := decimal.Zero
	if p.Currency == CurrencyLocal {
		local = p.Price
	}
	return CartLine{
		Code:             p.Code,
		Description:      p.Description,
		Currency:         p.Currency,
		Tax:              p.Tax,
		BasePriceLocal:   local,
		BasePriceForeign: p.PriceForeign,
		Quantity:         1,
	}
}

type cartLineJSON struct {
	Code             json.RawMessage `json:"code"`
	Description      json.RawMessage `json:"description"`
	Currency         json.RawMessage `json:"currency"`
	Tax              json.RawMessage `json:"tes"`
	BasePriceLocal   json.RawMessage `json:"price"`
	BasePriceForeign json.RawMessage `json:"price_usd"`
	Quantity         json.RawMessage `json:"quantity"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *CartLine) UnmarshalJSON(data []byte) error {
	var raw cartLineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var (
		decoded CartLine
		err     error
		s       string
	)
	if decoded.Code, err = flexString(raw.Code); err != nil {
		return fmt.Errorf("code: %w", err)
	}
	if decoded.Description, err = flexString(raw.Description); err != nil {
		return fmt.Errorf("description: %w", err)
	}
	if s, err = flexString(raw.Currency); err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	decoded.Currency = ParseCurrency(s)
	if s, err = flexString(raw.Tax); err != nil {
		return fmt.Errorf("tes: %w", err)
	}
	decoded.Tax = ParseTaxCode(s)
	if decoded.BasePriceLocal, err = flexDecimal(raw.BasePriceLocal); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if decoded.BasePriceForeign, err = flexDecimal(raw.BasePriceForeign); err != nil {
		return fmt.Errorf("price_usd: %w", err)
	}

	quantity, err := flexDecimal(raw.Quantity)
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	decoded.Quantity = max(0, int(quantity.IntPart()))

	*l = decoded
	return nil
}
