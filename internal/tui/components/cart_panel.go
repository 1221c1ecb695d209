package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pricelist/internal/pricing"
	"github.com/Veraticus/pricelist/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CartPanelModel renders the cart lines and handles per-line actions.
type CartPanelModel struct {
	theme   themes.Theme
	display func(code string, committed int) string
	summary pricing.CartSummary
	editing string
	cursor  int
	width   int
	focused bool
}

// NewCartPanel creates an empty cart panel.
func NewCartPanel(theme themes.Theme) CartPanelModel {
	return CartPanelModel{
		theme: theme,
		width: 40,
		display: func(_ string, committed int) string {
			return fmt.Sprintf("%d", committed)
		},
	}
}

// SetSummary replaces the priced cart. display renders the quantity field of
// a line, which may hold uncommitted text.
func (m *CartPanelModel) SetSummary(summary pricing.CartSummary, display func(code string, committed int) string) {
	m.summary = summary
	if display != nil {
		m.display = display
	}
	m.cursor = min(m.cursor, max(0, len(summary.Lines)-1))
}

// SetEditing marks the line whose quantity is being typed, or clears it with "".
func (m *CartPanelModel) SetEditing(code string) { m.editing = code }

// Editing returns the code whose quantity is being typed.
func (m CartPanelModel) Editing() string { return m.editing }

// Focus gives the panel keyboard focus.
func (m *CartPanelModel) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *CartPanelModel) Blur() {
	m.focused = false
	m.editing = ""
}

// Focused reports whether the panel has focus.
func (m CartPanelModel) Focused() bool { return m.focused }

// Empty reports whether the cart has no lines.
func (m CartPanelModel) Empty() bool { return len(m.summary.Lines) == 0 }

// Cursor is the highlighted line index.
func (m CartPanelModel) Cursor() int { return m.cursor }

// Selected returns the line under the cursor.
func (m CartPanelModel) Selected() (pricing.PricedLine, bool) {
	if m.cursor < 0 || m.cursor >= len(m.summary.Lines) {
		return pricing.PricedLine{}, false
	}
	return m.summary.Lines[m.cursor], true
}

// Resize sets the panel width.
func (m *CartPanelModel) Resize(width int) {
	m.width = width
}

// Update handles navigation and line actions while the panel is focused.
func (m CartPanelModel) Update(msg tea.Msg) (CartPanelModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused || m.editing != "" {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		m.cursor = min(m.cursor+1, max(0, len(m.summary.Lines)-1))
		return m, nil
	case "k", "up":
		m.cursor = max(m.cursor-1, 0)
		return m, nil
	case "esc":
		return m, func() tea.Msg { return BackToListMsg{} }
	}

	line, found := m.Selected()
	if !found {
		return m, nil
	}

	var action CartAction
	switch keyMsg.String() {
	case "+", "=", "right", "l":
		action = CartIncrement
	case "-", "left", "h":
		action = CartDecrement
	case "x", "delete", "backspace":
		action = CartRemove
	case "e", "enter":
		action = CartEditQuantity
	default:
		return m, nil
	}

	code := line.Code
	return m, func() tea.Msg {
		return CartActionMsg{Code: code, Action: action}
	}
}

// View renders the cart, or nothing when it is empty.
func (m CartPanelModel) View() string {
	if m.Empty() {
		return ""
	}

	title := m.theme.Title.Render(fmt.Sprintf("Carrito (%d)", m.summary.Units))

	descWidth := max(10, m.width-36)
	lines := make([]string, 0, len(m.summary.Lines)+3)
	lines = append(lines, title)

	for i, line := range m.summary.Lines {
		qty := m.display(line.Code, line.Quantity)
		if line.Code == m.editing {
			qty = m.theme.Highlighted.Render("[" + qty + "▏]")
		} else {
			qty = "[" + qty + "]"
		}

		row := fmt.Sprintf("%-*s %s × %s = %s",
			descWidth,
			truncate(line.Description, descWidth),
			qty,
			pricing.FormatARS(line.UnitPrice),
			m.theme.Price.Render(pricing.FormatARS(line.Subtotal)),
		)
		if m.focused && i == m.cursor {
			row = m.theme.Selected.Render("›") + " " + row
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}

	lines = append(lines,
		lipgloss.NewStyle().Foreground(m.theme.Border).Render(strings.Repeat("─", max(10, m.width-4))),
		m.theme.Bold.Render("Total: ")+m.theme.Price.Render(pricing.FormatARS(m.summary.Total)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
