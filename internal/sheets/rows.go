package sheets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/pricelist/internal/catalog"
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/shopspring/decimal"
)

// ErrMissingCodeColumn is returned when the header row has no code column.
var ErrMissingCodeColumn = errors.New("header row has no code column")

type column int

const (
	colCode column = iota
	colDescription
	colBrand
	colCurrency
	colTax
	colPrice
	colPriceForeign
	colRate
	numColumns
)

// headerAliases maps normalized header text to a column. Headers are
// matched after catalog.Normalize, so accents and case do not matter.
var headerAliases = map[string]column{
	"code":        colCode,
	"codigo":      colCode,
	"description": colDescription,
	"descripcion": colDescription,
	"brand":       colBrand,
	"marca":       colBrand,
	"currency":    colCurrency,
	"moneda":      colCurrency,
	"tes":         colTax,
	"iva":         colTax,
	"price":       colPrice,
	"precio":      colPrice,
	"price_usd":   colPriceForeign,
	"precio usd":  colPriceForeign,
	"rate":        colRate,
	"cotizacion":  colRate,
}

// rowsToProducts converts a header row plus data rows into products in sheet
// order. Rows without a code are skipped; missing cells are blank.
func rowsToProducts(rows [][]any) ([]model.Product, error) {
	products := []model.Product{}
	if len(rows) == 0 {
		return products, nil
	}

	index := make([]int, numColumns)
	for i := range index {
		index[i] = -1
	}
	for i, cell := range rows[0] {
		name := catalog.Normalize(cellText(cell))
		if col, ok := headerAliases[name]; ok && index[col] < 0 {
			index[col] = i
		}
	}
	if index[colCode] < 0 {
		return nil, ErrMissingCodeColumn
	}

	for n, row := range rows[1:] {
		get := func(col column) any {
			i := index[col]
			if i < 0 || i >= len(row) {
				return nil
			}
			return row[i]
		}

		code := cellText(get(colCode))
		if code == "" {
			continue
		}

		p := model.Product{
			Code:        code,
			Description: cellText(get(colDescription)),
			Brand:       cellText(get(colBrand)),
			Currency:    model.ParseCurrency(cellText(get(colCurrency))),
			Tax:         model.ParseTaxCode(cellText(get(colTax))),
		}

		var err error
		if p.Price, err = cellDecimal(get(colPrice)); err != nil {
			return nil, fmt.Errorf("row %d price: %w", n+2, err)
		}
		if p.PriceForeign, err = cellDecimal(get(colPriceForeign)); err != nil {
			return nil, fmt.Errorf("row %d price_usd: %w", n+2, err)
		}
		if p.Rate, err = cellDecimal(get(colRate)); err != nil {
			return nil, fmt.Errorf("row %d rate: %w", n+2, err)
		}
		products = append(products, p)
	}

	return products, nil
}

// cellText renders an unformatted cell value as trimmed text. Whole numbers
// print without a fractional part so numeric codes read like the sheet.
func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

func cellDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, nil
	case float64:
		return decimal.NewFromFloat(x), nil
	default:
		text := cellText(x)
		if text == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(text)
	}
}
