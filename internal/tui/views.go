package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/session"
	"github.com/charmbracelet/lipgloss"
)

const appTitle = "Lista de precios"

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.session.Status() == session.StatusLoading {
		return m.renderLoading()
	}

	sections := []string{
		m.renderHeader(),
		m.renderBody(),
		m.renderStatusBar(),
	}
	if m.config.ShowHelp {
		sections = append(sections, m.help.View(m.keymap))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render(appTitle),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Primary).Render("⠋"),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Cargando catálogo…"),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderHeader shows the title, the search box and both rate fields.
func (m Model) renderHeader() string {
	search := m.renderField("Buscar", m.searchInput.View(), m.focus == FocusSearch)
	billete := m.renderField("USD Billete", m.billeteInput.View(), m.focus == FocusBillete)
	divisas := m.renderField("USD Divisas", m.divisasInput.View(), m.focus == FocusDivisas)

	title := m.theme.Title.Render(appTitle)

	if m.width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, title, search, billete, divisas)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, search, "  ", billete, "  ", divisas),
	)
}

func (m Model) renderField(label, input string, focused bool) string {
	labelStyle := m.theme.Label
	if focused {
		labelStyle = m.theme.StatusInfo
	}
	return labelStyle.Render(label+": ") + input
}

// renderBody lays out the catalog list and the cart side by side on wide
// terminals and stacked otherwise. An empty cart is not drawn.
func (m Model) renderBody() string {
	list := m.catalogList.View()
	if m.session.Status() == session.StatusFailed {
		list = lipgloss.JoinVertical(lipgloss.Left, m.renderLoadError(), list)
	}

	cart := m.cartPanel.View()
	if cart == "" {
		return list
	}

	box := m.theme.RoundedBox
	if m.focus == FocusCart || m.focus == FocusQuantity {
		box = m.theme.FocusedBox
	}

	if m.width >= 120 {
		return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", box.Render(cart))
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, box.Render(cart))
}

func (m Model) renderLoadError() string {
	msg := "No se pudo cargar el catálogo"
	if err := m.session.LoadError(); err != nil {
		msg = fmt.Sprintf("%s: %s", msg, common.UserMessage(err))
	}
	return m.theme.StatusError.Render(msg)
}

func (m Model) renderStatusBar() string {
	var left, center, right string

	// Left: focus
	switch m.focus {
	case FocusCatalog:
		left = "Catálogo"
	case FocusCart:
		left = "Carrito"
	case FocusSearch:
		left = "Buscando"
	case FocusBillete, FocusDivisas:
		left = "Cotización"
	case FocusQuantity:
		left = "Cantidad"
	}

	// Center: the latest problem, if any
	switch {
	case m.listening:
		center = m.theme.StatusPending.Render("Escuchando…")
	case m.session.VoiceError() != nil:
		center = m.theme.StatusWarning.Render(common.UserMessage(m.session.VoiceError()))
	case m.lastError != nil:
		center = m.theme.StatusError.Render(common.UserMessage(m.lastError))
	}

	// Right: cart size
	if n := m.session.Cart().Len(); n > 0 {
		right = fmt.Sprintf("%d en carrito", n)
	}

	totalWidth := m.width - 2
	spacing := max(2, totalWidth-lipgloss.Width(left)-lipgloss.Width(center)-lipgloss.Width(right))
	leftPad := spacing / 2
	rightPad := spacing - leftPad

	status := fmt.Sprintf("%s%s%s%s%s",
		m.theme.StatusInfo.Render(left),
		strings.Repeat(" ", leftPad),
		center,
		strings.Repeat(" ", rightPad),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(right),
	)

	return m.theme.Normal.
		Width(max(1, m.width-2)).
		MaxWidth(max(1, m.width-2)).
		Render(status)
}
