package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatARS(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0", want: "$ 0,00"},
		{amount: "5", want: "$ 5,00"},
		{amount: "999.999", want: "$ 1.000,00"},
		{amount: "11050", want: "$ 11.050,00"},
		{amount: "1234567.891", want: "$ 1.234.567,89"},
		{amount: "-1500.5", want: "$ -1.500,50"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatARS(dec(tt.amount)))
		})
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "-", FormatRate(dec("0")))
	assert.Equal(t, "1.025,50", FormatRate(dec("1025.5")))
}
