package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/pricelist/internal/model"
	"github.com/Veraticus/pricelist/internal/pricing"
	"github.com/charmbracelet/lipgloss"
)

// Align is the horizontal alignment of a table column.
type Align int

// Column alignments.
const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes one table column.
type Column struct {
	Title string
	Align Align
}

// RenderTable lays rows out under headers, sizing each column to its widest cell.
func RenderTable(columns []Column, rows [][]string) string {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = lipgloss.Width(col.Title)
	}
	for _, row := range rows {
		for i := range columns {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
	}

	renderRow := func(cells []string) string {
		parts := make([]string, len(columns))
		for i, col := range columns {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			style := TableCellStyle.Width(widths[i] + TableCellStyle.GetPaddingRight())
			if col.Align == AlignRight {
				style = style.Align(lipgloss.Right)
			}
			parts[i] = style.Render(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}

	titles := make([]string, len(columns))
	for i, col := range columns {
		titles[i] = col.Title
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, TableHeaderStyle.Render(renderRow(titles)))
	for _, row := range rows {
		lines = append(lines, renderRow(row))
	}
	return strings.Join(lines, "\n")
}

var productColumns = []Column{
	{Title: "Código"},
	{Title: "Descripción"},
	{Title: "Marca"},
	{Title: "Moneda"},
	{Title: "Cotiz.", Align: AlignRight},
	{Title: "Precio", Align: AlignRight},
}

// PrintProducts writes a priced product table followed by the result count.
// total is the size of the whole result; products may be a prefix of it.
func PrintProducts(w io.Writer, products []model.PricedProduct, total int) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.Code,
			p.Description,
			p.Brand,
			p.Currency.Label(),
			pricing.FormatRate(p.AppliedRate),
			pricing.FormatARS(p.EffectivePrice),
		})
	}

	footer := fmt.Sprintf("%d productos encontrados", total)
	if total == 1 {
		footer = "1 producto encontrado"
	}
	if len(products) < total {
		footer += fmt.Sprintf(" (mostrando %d)", len(products))
	}

	if len(products) > 0 {
		if _, err := fmt.Fprintln(w, RenderTable(productColumns, rows)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, SubtleStyle.Render(footer))
	return err
}

var cartColumns = []Column{
	{Title: "Código"},
	{Title: "Descripción"},
	{Title: "Cant.", Align: AlignRight},
	{Title: "Unitario", Align: AlignRight},
	{Title: "Subtotal", Align: AlignRight},
}

// PrintCart writes the cart lines and total, or a note when it is empty.
func PrintCart(w io.Writer, summary pricing.CartSummary) error {
	if len(summary.Lines) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("El carrito está vacío"))
		return err
	}

	rows := make([][]string, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		rows = append(rows, []string{
			line.Code,
			line.Description,
			fmt.Sprintf("%d", line.Quantity),
			pricing.FormatARS(line.UnitPrice),
			pricing.FormatARS(line.Subtotal),
		})
	}

	total := BoldStyle.Render(fmt.Sprintf("Total (%d unidades): %s", summary.Units, pricing.FormatARS(summary.Total)))
	_, err := fmt.Fprintln(w, RenderBox(CartIcon+" Carrito", RenderTable(cartColumns, rows)+"\n\n"+total))
	return err
}
