package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Catalog
	AddToCart key.Binding
	Search    key.Binding
	Billete   key.Binding
	Divisas   key.Binding
	Voice     key.Binding

	// Cart
	SwitchPanel key.Binding
	Increment   key.Binding
	Decrement   key.Binding
	Remove      key.Binding
	EditQty     key.Binding
	ClearCart   key.Binding

	// Inputs
	Done key.Binding

	// Application
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "subir"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "bajar"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("PgUp", "página arriba"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("PgDn", "página abajo"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "inicio"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "final"),
		),

		// Catalog
		AddToCart: key.NewBinding(
			key.WithKeys("enter", "a"),
			key.WithHelp("Enter/a", "agregar al carrito"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "buscar"),
		),
		Billete: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "cotización billete"),
		),
		Divisas: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "cotización divisas"),
		),
		Voice: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "búsqueda por voz"),
		),

		// Cart
		SwitchPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "catálogo/carrito"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+", "=", "right", "l"),
			key.WithHelp("+", "sumar uno"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-", "left", "h"),
			key.WithHelp("-", "restar uno"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete", "backspace"),
			key.WithHelp("x", "quitar"),
		),
		EditQty: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "editar cantidad"),
		),
		ClearCart: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "vaciar carrito"),
		),

		// Inputs
		Done: key.NewBinding(
			key.WithKeys("enter", "esc", "tab"),
			key.WithHelp("Enter/Esc", "listo"),
		),

		// Application
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "salir"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "salir"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ayuda"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.AddToCart, k.SwitchPanel, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Search, k.Billete, k.Divisas, k.Voice, k.AddToCart},
		{k.SwitchPanel, k.Increment, k.Decrement, k.Remove, k.EditQty, k.ClearCart},
		{k.Done, k.Help, k.Quit},
	}
}
