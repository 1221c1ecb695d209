package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "Látex", want: "latex"},
		{input: "LATEX", want: "latex"},
		{input: "latex", want: "latex"},
		{input: "Pingüino Ñandú", want: "pinguino nandu"},
		{input: "CAÑO 3/4\" PVC", want: "cano 3/4\" pvc"},
		{input: "12345-ÀÉÎÕÜ", want: "12345-aeiou"},
		{input: "  espacios  ", want: "  espacios  "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeFoldsEquivalentSpellings(t *testing.T) {
	assert.Equal(t, Normalize("latex"), Normalize("Látex"))
	assert.Equal(t, Normalize("latex"), Normalize("LATEX"))
	// Precomposed and decomposed forms fold to the same text.
	assert.Equal(t, Normalize("á"), Normalize("á"))
}

func TestTokenize(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \t "))
	assert.Equal(t, []string{"latex", "alba"}, Tokenize("  Látex   ALBA "))
}
