package catalog

import (
	"testing"

	"github.com/Veraticus/pricelist/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []model.Product {
	return []model.Product{
		{Code: "10001", Description: "Látex interior 20L", Brand: "Alba", Currency: model.CurrencyLocal, Price: decimal.NewFromInt(50000), Tax: model.Tax21},
		{Code: "Z10", Description: "Rodillo lana", Brand: "El Galgo", Currency: model.CurrencyBillete, PriceForeign: decimal.NewFromInt(10), Tax: model.Tax105},
		{Code: "10002", Description: "Latex exterior 4L", Brand: "Sherwin", Currency: model.CurrencyDivisas, PriceForeign: decimal.NewFromInt(30)},
		{Code: "P-77", Description: "Pincel cerda", Currency: model.CurrencyLocal, Price: decimal.NewFromInt(1200)},
	}
}

func codes(items []model.PricedProduct) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Code)
	}
	return out
}

func TestFilter(t *testing.T) {
	rates := model.ParseRates("1000", "1100")

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "empty term keeps everything", term: "", want: []string{"10001", "Z10", "10002", "P-77"}},
		{name: "blank term keeps everything", term: "   ", want: []string{"10001", "Z10", "10002", "P-77"}},
		{name: "accent insensitive", term: "latex", want: []string{"10001", "10002"}},
		{name: "case insensitive", term: "LÁTEX", want: []string{"10001", "10002"}},
		{name: "every token must match", term: "latex alba", want: []string{"10001"}},
		{name: "brand is searchable", term: "galgo", want: []string{"Z10"}},
		{name: "code is searchable", term: "p-77", want: []string{"P-77"}},
		{name: "substring not word boundary", term: "odil", want: []string{"Z10"}},
		{name: "tokens across fields", term: "rodillo z10", want: []string{"Z10"}},
		{name: "tokens split across products", term: "10001 z10", want: []string{}},
		{name: "no match", term: "martillo", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(testCatalog(), tt.term, rates)
			assert.Equal(t, tt.want, codes(got))
		})
	}
}

func TestFilterTokenOrderIsIrrelevant(t *testing.T) {
	rates := model.ParseRates("1000", "1100")
	assert.Equal(t,
		codes(Filter(testCatalog(), "latex alba", rates)),
		codes(Filter(testCatalog(), "alba latex", rates)))
	assert.Equal(t,
		codes(Filter(testCatalog(), "4l exterior latex", rates)),
		codes(Filter(testCatalog(), "latex 4l exterior", rates)))
}

func TestFilterPricesResults(t *testing.T) {
	got := Filter(testCatalog(), "", model.ParseRates("1000", "1100"))
	require.Len(t, got, 4)

	assert.True(t, decimal.NewFromInt(60500).Equal(got[0].EffectivePrice))
	assert.True(t, decimal.NewFromInt(50000).Equal(got[0].BaseLocalPrice))
	assert.True(t, decimal.NewFromInt(1).Equal(got[0].AppliedRate))

	assert.True(t, decimal.NewFromInt(11050).Equal(got[1].EffectivePrice))
	assert.True(t, decimal.NewFromInt(10000).Equal(got[1].BasePrice))
	assert.True(t, got[1].BaseLocalPrice.IsZero())

	assert.True(t, decimal.NewFromInt(33000).Equal(got[2].EffectivePrice))
	assert.True(t, decimal.NewFromInt(1100).Equal(got[2].AppliedRate))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	products := testCatalog()
	_ = Filter(products, "latex", model.ParseRates("1", "1"))
	assert.Equal(t, testCatalog(), products)
}
