package themes

import (
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Selected      lipgloss.Style
	StatusPending lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Price         lipgloss.Style
	InCart        lipgloss.Style
	Sentinel      lipgloss.Style
	Label         lipgloss.Style
	RoundedBox    lipgloss.Style
	FocusedBox    lipgloss.Style
	Highlighted   lipgloss.Style
	Secondary     lipgloss.Color
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

// Default is the default theme.
var Default = build(palette{
	primary:    "#7c3aed",
	secondary:  "#a78bfa",
	success:    "#10b981",
	warning:    "#f59e0b",
	errorColor: "#ef4444",
	info:       "#3b82f6",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	border:     "#404040",
	muted:      "#737373",
	selectedFg: "#fafafa",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:    "#cba6f7",
	secondary:  "#f5c2e7",
	success:    "#a6e3a1",
	warning:    "#f9e2af",
	errorColor: "#f38ba8",
	info:       "#89dceb",
	foreground: "#cdd6f4",
	subtle:     "#a6adc8",
	border:     "#45475a",
	muted:      "#6c7086",
	selectedFg: "#1e1e2e",
})

type palette struct {
	primary, secondary, success, warning, errorColor, info string
	foreground, subtle, border, muted, selectedFg          string
}

func build(p palette) Theme {
	return Theme{
		// Colors
		Primary:    lipgloss.Color(p.primary),
		Secondary:  lipgloss.Color(p.secondary),
		Success:    lipgloss.Color(p.success),
		Warning:    lipgloss.Color(p.warning),
		Error:      lipgloss.Color(p.errorColor),
		Info:       lipgloss.Color(p.info),
		Foreground: lipgloss.Color(p.foreground),
		Border:     lipgloss.Color(p.border),
		Muted:      lipgloss.Color(p.muted),

		// Text styles
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),
		Price: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.success)),
		InCart: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.secondary)),
		Sentinel: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(p.muted)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.selectedFg)).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color(p.border)).
			Foreground(lipgloss.Color(p.foreground)),

		// Component styles
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),
		FocusedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.primary)).
			Padding(0, 1),

		// Status styles
		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
	}
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// CurrencyStyle colors a currency label so dollar-priced rows stand out.
func (t Theme) CurrencyStyle(c model.Currency) lipgloss.Style {
	switch {
	case c == model.CurrencyBillete:
		return lipgloss.NewStyle().Foreground(t.Warning)
	case c == model.CurrencyDivisas:
		return lipgloss.NewStyle().Foreground(t.Info)
	case c.Known():
		return lipgloss.NewStyle().Foreground(t.Foreground)
	default:
		return lipgloss.NewStyle().Foreground(t.Muted)
	}
}
