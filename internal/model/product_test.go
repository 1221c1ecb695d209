package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Product
		wantErr bool
	}{
		{
			name:  "numeric codes and amounts",
			input: `{"code":10001,"description":"Látex Alba","brand":"Alba","currency":2,"tes":501,"price":0,"price_usd":12.5,"rate":1}`,
			want: Product{
				Code:         "10001",
				Description:  "Látex Alba",
				Brand:        "Alba",
				Currency:     CurrencyBillete,
				Tax:          Tax105,
				Price:        decimal.Zero,
				PriceForeign: decimal.RequireFromString("12.5"),
				Rate:         decimal.NewFromInt(1),
			},
		},
		{
			name:  "string amounts with padding",
			input: `{"code":" Z10 ","description":"Rodillo","currency":" 1 ","tes":"503","price":"1500.75","price_usd":""}`,
			want: Product{
				Code:         "Z10",
				Description:  "Rodillo",
				Currency:     CurrencyLocal,
				Tax:          Tax21,
				Price:        decimal.RequireFromString("1500.75"),
				PriceForeign: decimal.Zero,
				Rate:         decimal.Zero,
			},
		},
		{
			name:  "missing optional fields",
			input: `{"code":"A1","description":"Lija","currency":null}`,
			want: Product{
				Code:         "A1",
				Description:  "Lija",
				Price:        decimal.Zero,
				PriceForeign: decimal.Zero,
				Rate:         decimal.Zero,
			},
		},
		{
			name:    "non numeric price",
			input:   `{"code":"A1","price":"mucho"}`,
			wantErr: true,
		},
		{
			name:    "object as code",
			input:   `{"code":{"id":1}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Product
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Code, got.Code)
			assert.Equal(t, tt.want.Description, got.Description)
			assert.Equal(t, tt.want.Brand, got.Brand)
			assert.Equal(t, tt.want.Currency, got.Currency)
			assert.Equal(t, tt.want.Tax, got.Tax)
			assert.True(t, tt.want.Price.Equal(got.Price), "price: got %s", got.Price)
			assert.True(t, tt.want.PriceForeign.Equal(got.PriceForeign), "price_usd: got %s", got.PriceForeign)
			assert.True(t, tt.want.Rate.Equal(got.Rate), "rate: got %s", got.Rate)
		})
	}
}

func TestCartLineJSONShape(t *testing.T) {
	line := CartLine{
		Code:             "Z10",
		Description:      "Rodillo",
		Currency:         CurrencyBillete,
		Tax:              Tax105,
		BasePriceLocal:   decimal.Zero,
		BasePriceForeign: decimal.NewFromInt(10),
		Quantity:         2,
	}

	data, err := json.Marshal(line)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"code", "description", "currency", "tes", "price", "price_usd", "quantity"} {
		assert.Contains(t, fields, key)
	}

	var back CartLine
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, line.Code, back.Code)
	assert.Equal(t, line.Currency, back.Currency)
	assert.Equal(t, line.Tax, back.Tax)
	assert.Equal(t, 2, back.Quantity)
	assert.True(t, line.BasePriceForeign.Equal(back.BasePriceForeign))
}

func TestCartLineUnmarshalLegacyNumbers(t *testing.T) {
	var line CartLine
	err := json.Unmarshal([]byte(`{"code":77,"description":"Pincel","currency":1,"tes":503,"price":250,"price_usd":0,"quantity":-3}`), &line)
	require.NoError(t, err)

	assert.Equal(t, "77", line.Code)
	assert.Equal(t, CurrencyLocal, line.Currency)
	assert.Equal(t, Tax21, line.Tax)
	assert.True(t, decimal.NewFromInt(250).Equal(line.BasePriceLocal))
	assert.Equal(t, 0, line.Quantity)
}

func TestNewCartLine(t *testing.T) {
	t.Run("local product keeps peso price", func(t *testing.T) {
		line := NewCartLine(Product{Code: "L1", Currency: CurrencyLocal, Price: decimal.NewFromInt(900), PriceForeign: decimal.NewFromInt(3)})
		assert.True(t, decimal.NewFromInt(900).Equal(line.BasePriceLocal))
		assert.Equal(t, 1, line.Quantity)
	})

	t.Run("foreign product drops peso price", func(t *testing.T) {
		line := NewCartLine(Product{Code: "F1", Currency: CurrencyDivisas, Price: decimal.NewFromInt(900), PriceForeign: decimal.NewFromInt(3)})
		assert.True(t, line.BasePriceLocal.IsZero())
		assert.True(t, decimal.NewFromInt(3).Equal(line.BasePriceForeign))
	})
}
