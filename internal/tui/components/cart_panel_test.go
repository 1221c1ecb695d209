package components

import (
	"testing"

	"github.com/Veraticus/pricelist/internal/model"
	"github.com/Veraticus/pricelist/internal/pricing"
	"github.com/Veraticus/pricelist/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary() pricing.CartSummary {
	lines := []model.CartLine{
		{Code: "P-77", Description: "Pincel", Currency: model.CurrencyLocal, BasePriceLocal: decimal.NewFromInt(1200), Quantity: 2},
		{Code: "Z10", Description: "Tijera", Currency: model.CurrencyBillete, BasePriceForeign: decimal.NewFromInt(10), Quantity: 1},
	}
	return pricing.PriceCart(lines, model.ParseRates("1000", "1050"))
}

func TestCartPanel_HiddenWhenEmpty(t *testing.T) {
	panel := NewCartPanel(themes.Default)
	assert.True(t, panel.Empty())
	assert.Empty(t, panel.View())
}

func TestCartPanel_View(t *testing.T) {
	panel := NewCartPanel(themes.Default)
	panel.Resize(80)
	panel.SetSummary(testSummary(), nil)

	view := panel.View()
	assert.Contains(t, view, "Carrito (3)")
	assert.Contains(t, view, "Pincel")
	assert.Contains(t, view, "[2]")
	assert.Contains(t, view, "$ 2.400,00")
	assert.Contains(t, view, "$ 12.400,00")
}

func TestCartPanel_EditingShowsRawText(t *testing.T) {
	panel := NewCartPanel(themes.Default)
	panel.SetSummary(testSummary(), func(code string, committed int) string {
		if code == "P-77" {
			return ""
		}
		return "1"
	})
	panel.SetEditing("P-77")

	assert.Equal(t, "P-77", panel.Editing())
	assert.Contains(t, panel.View(), "[▏]")
}

func TestCartPanel_Actions(t *testing.T) {
	tests := []struct {
		key    tea.KeyMsg
		name   string
		action CartAction
	}{
		{name: "increment", key: runes("+"), action: CartIncrement},
		{name: "decrement", key: runes("-"), action: CartDecrement},
		{name: "remove", key: runes("x"), action: CartRemove},
		{name: "edit", key: runes("e"), action: CartEditQuantity},
		{name: "edit with enter", key: tea.KeyMsg{Type: tea.KeyEnter}, action: CartEditQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel := NewCartPanel(themes.Default)
			panel.SetSummary(testSummary(), nil)
			panel.Focus()

			panel, _ = panel.Update(tea.KeyMsg{Type: tea.KeyDown})
			_, cmd := panel.Update(tt.key)
			require.NotNil(t, cmd)

			msg, ok := cmd().(CartActionMsg)
			require.True(t, ok)
			assert.Equal(t, "Z10", msg.Code)
			assert.Equal(t, tt.action, msg.Action)
		})
	}
}

func TestCartPanel_IgnoresKeysUnlessFocused(t *testing.T) {
	panel := NewCartPanel(themes.Default)
	panel.SetSummary(testSummary(), nil)

	_, cmd := panel.Update(runes("+"))
	assert.Nil(t, cmd)

	panel.Focus()
	panel.SetEditing("P-77")
	_, cmd = panel.Update(runes("+"))
	assert.Nil(t, cmd, "keys belong to the quantity field while editing")

	panel.Blur()
	assert.Empty(t, panel.Editing())
}

func TestCartPanel_EscReturnsToList(t *testing.T) {
	panel := NewCartPanel(themes.Default)
	panel.SetSummary(testSummary(), nil)
	panel.Focus()

	_, cmd := panel.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, BackToListMsg{}, cmd())
}

func TestCartPanel_CursorClampsOnShrink(t *testing.T) {
	panel := NewCartPanel(themes.Default)
	panel.SetSummary(testSummary(), nil)
	panel.Focus()
	panel, _ = panel.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, panel.Cursor())

	summary := testSummary()
	summary.Lines = summary.Lines[:1]
	panel.SetSummary(summary, nil)
	assert.Equal(t, 0, panel.Cursor())

	line, ok := panel.Selected()
	require.True(t, ok)
	assert.Equal(t, "P-77", line.Code)
}
