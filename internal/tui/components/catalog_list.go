package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pricelist/internal/model"
	"github.com/Veraticus/pricelist/internal/pricing"
	"github.com/Veraticus/pricelist/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// SentinelText is the placeholder row shown while more results remain.
	SentinelText = "Cargando más…"
	// EndOfListText closes a fully revealed result list.
	EndOfListText = "No hay más productos"

	inCartMarker = "●"
)

// CatalogListModel shows the revealed slice of the filtered catalog.
type CatalogListModel struct {
	theme   themes.Theme
	inCart  func(code string) bool
	items   []model.PricedProduct
	table   table.Model
	total   int
	cursor  int
	width   int
	height  int
	hasMore bool
	focused bool
}

// NewCatalogList creates an empty catalog list.
func NewCatalogList(theme themes.Theme) CatalogListModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := CatalogListModel{
		table:   t,
		theme:   theme,
		width:   80,
		height:  24,
		focused: true,
		inCart:  func(string) bool { return false },
	}
	m.updateColumnWidths()

	return m
}

// SetItems replaces the visible products. total is the size of the whole
// filtered result and hasMore whether a sentinel row follows the items.
func (m *CatalogListModel) SetItems(items []model.PricedProduct, total int, hasMore bool, inCart func(code string) bool) {
	m.items = items
	m.total = total
	m.hasMore = hasMore
	if inCart != nil {
		m.inCart = inCart
	}

	m.cursor = min(m.cursor, max(0, m.rowCount()-1))
	m.table.SetRows(m.buildTableRows())
	m.table.SetCursor(m.cursor)
}

// ResetCursor moves the cursor back to the first row.
func (m *CatalogListModel) ResetCursor() {
	m.cursor = 0
	m.table.SetCursor(0)
}

// Focus marks the list as receiving navigation keys.
func (m *CatalogListModel) Focus() {
	m.focused = true
	m.table.Focus()
}

// Blur stops the list from highlighting its cursor.
func (m *CatalogListModel) Blur() {
	m.focused = false
	m.table.Blur()
}

// Focused reports whether the list has focus.
func (m CatalogListModel) Focused() bool { return m.focused }

// Cursor is the index of the highlighted row.
func (m CatalogListModel) Cursor() int { return m.cursor }

// AtSentinel reports whether the cursor rests on the "load more" row.
func (m CatalogListModel) AtSentinel() bool {
	return m.hasMore && m.cursor == len(m.items)
}

// Selected returns the product under the cursor.
func (m CatalogListModel) Selected() (model.PricedProduct, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return model.PricedProduct{}, false
	}
	return m.items[m.cursor], true
}

func (m CatalogListModel) rowCount() int {
	if m.hasMore {
		return len(m.items) + 1
	}
	return len(m.items)
}

// Update handles navigation keys.
func (m CatalogListModel) Update(msg tea.Msg) (CatalogListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	last := max(0, m.rowCount()-1)
	page := max(1, m.table.Height()-1)

	switch keyMsg.String() {
	case "j", "down":
		m.cursor = min(m.cursor+1, last)
	case "k", "up":
		m.cursor = max(m.cursor-1, 0)
	case "pgdown", "ctrl+f":
		m.cursor = min(m.cursor+page, last)
	case "pgup", "ctrl+b":
		m.cursor = max(m.cursor-page, 0)
	case "G", "end":
		m.cursor = last
	case "g", "home":
		m.cursor = 0
	case "enter", "a":
		if p, found := m.Selected(); found {
			index := m.cursor
			return m, func() tea.Msg {
				return ProductSelectedMsg{Product: p.Product, Index: index}
			}
		}
		return m, nil
	default:
		return m, nil
	}

	m.table.SetCursor(m.cursor)
	return m, nil
}

// View renders the list with its header and footer.
func (m CatalogListModel) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.table.View(),
		m.renderFooter(),
	)
}

func (m CatalogListModel) renderHeader() string {
	return m.theme.Subtitle.Render(ResultCount(m.total))
}

func (m CatalogListModel) renderFooter() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	switch {
	case m.hasMore:
		return muted.Render(fmt.Sprintf("Mostrando %d de %d", len(m.items), m.total))
	case m.total > 0:
		return m.theme.Sentinel.Render(EndOfListText)
	default:
		return muted.Render("Sin resultados")
	}
}

// ResultCount is the result-count line shown above the list.
func ResultCount(total int) string {
	if total == 1 {
		return "1 producto encontrado"
	}
	return fmt.Sprintf("%d productos encontrados", total)
}

func (m CatalogListModel) buildTableRows() []table.Row {
	rows := make([]table.Row, 0, m.rowCount())

	for _, p := range m.items {
		marker := ""
		if m.inCart(p.Code) {
			marker = inCartMarker
		}

		rows = append(rows, table.Row{
			marker,
			p.Code,
			truncate(p.Description, m.descriptionWidth()),
			p.Brand,
			p.Currency.Label(),
			pricing.FormatRate(p.AppliedRate),
			pricing.FormatARS(p.EffectivePrice),
		})
	}

	if m.hasMore {
		rows = append(rows, table.Row{"", "", SentinelText, "", "", "", ""})
	}

	return rows
}

// Resize updates the component size.
func (m *CatalogListModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Result count, column header with its border, and footer.
	m.table.SetHeight(max(3, height-4))
	m.updateColumnWidths()
	m.table.SetRows(m.buildTableRows())
}

func (m CatalogListModel) descriptionWidth() int {
	fixed := 2 + 10 + 12 + 12 + 10 + 16
	return max(15, m.width-4-fixed-14)
}

func (m *CatalogListModel) updateColumnWidths() {
	m.table.SetColumns([]table.Column{
		{Title: "", Width: 2},
		{Title: "Código", Width: 10},
		{Title: "Descripción", Width: m.descriptionWidth()},
		{Title: "Marca", Width: 12},
		{Title: "Moneda", Width: 12},
		{Title: "Cotiz.", Width: 10},
		{Title: "Precio", Width: 16},
	})
}

func truncate(s string, maxLen int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= maxLen {
		return string(runes)
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
