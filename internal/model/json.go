package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidField is returned when a feed value has neither string nor number form.
var ErrInvalidField = errors.New("invalid field value")

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// flexString accepts a JSON string or number and returns its trimmed text.
func flexString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}

	raw = bytes.TrimSpace(raw)
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	case '{', '[':
		return "", ErrInvalidField
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", ErrInvalidField
		}
		return n.String(), nil
	}
}

// flexDecimal accepts a JSON number or numeric string. Null and blank are zero.
func flexDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	s, err := flexString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
