package catalog

import (
	"strings"

	"github.com/Veraticus/pricelist/internal/model"
	"github.com/Veraticus/pricelist/internal/pricing"
)

// SearchText is the folded text a product is matched against.
func SearchText(p model.Product) string {
	return Normalize(p.Description + " " + p.Code + " " + p.Brand)
}

// Matches reports whether every token occurs somewhere in the product text.
// Tokens must already be normalized.
func Matches(p model.Product, tokens []string) bool {
	text := SearchText(p)
	for _, token := range tokens {
		if !strings.Contains(text, token) {
			return false
		}
	}
	return true
}

// Filter returns the products matching term, in catalog order, priced at rates.
// An empty or blank term keeps every product.
func Filter(products []model.Product, term string, rates model.ExchangeRates) []model.PricedProduct {
	tokens := Tokenize(term)

	result := make([]model.PricedProduct, 0, len(products))
	for _, p := range products {
		if len(tokens) > 0 && !Matches(p, tokens) {
			continue
		}
		result = append(result, pricing.Price(p, rates))
	}
	return result
}
