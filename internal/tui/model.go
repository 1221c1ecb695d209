package tui

import (
	"context"
	"strconv"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/service"
	"github.com/Veraticus/pricelist/internal/session"
	"github.com/Veraticus/pricelist/internal/tui/components"
	"github.com/Veraticus/pricelist/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Focus is the element receiving key presses.
type Focus int

const (
	FocusCatalog Focus = iota
	FocusCart
	FocusSearch
	FocusBillete
	FocusDivisas
	FocusQuantity
)

// Model holds the main TUI state.
type Model struct {
	ctx          context.Context
	theme        themes.Theme
	lastError    error
	source       service.CatalogSource
	voice        service.VoiceInput
	session      *session.Session
	config       Config
	keymap       KeyMap
	help         help.Model
	searchInput  textinput.Model
	billeteInput textinput.Model
	divisasInput textinput.Model
	catalogList  components.CatalogListModel
	cartPanel    components.CartPanelModel
	height       int
	width        int
	focus        Focus
	listening    bool
	showHelp     bool
	quitting     bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	s := cfg.Session
	if s == nil {
		s = session.New(nil)
	}

	billete, divisas := s.RateTexts()

	m := Model{
		ctx:          cfg.Context,
		theme:        cfg.Theme,
		source:       cfg.Source,
		voice:        cfg.Voice,
		session:      s,
		config:       cfg,
		keymap:       DefaultKeyMap(),
		help:         help.New(),
		searchInput:  newInput("Buscar productos…", s.Term(), 80),
		billeteInput: newInput("Billete", billete, 12),
		divisasInput: newInput("Divisas", divisas, 12),
		catalogList:  components.NewCatalogList(cfg.Theme),
		cartPanel:    components.NewCartPanel(cfg.Theme),
		width:        cfg.Width,
		height:       cfg.Height,
		focus:        FocusCatalog,
	}

	m.sync()
	return m
}

func newInput(placeholder, value string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Prompt = ""
	input.SetValue(value)
	return input
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
	}

	if m.session.Status() == session.StatusLoading {
		cmds = append(cmds, loadCatalog(m.ctx, m.source, m.config.LoadTimeout))
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()

	case catalogLoadedMsg:
		m.session.ApplyLoad(msg.result)
		m.catalogList.ResetCursor()
		m.sync()

	case voiceResultMsg:
		m.listening = false
		m.session.VoiceResult(msg.transcript, msg.err)
		if msg.err == nil {
			m.searchInput.SetValue(m.session.Term())
			m.catalogList.ResetCursor()
		}
		m.sync()

	case components.ProductSelectedMsg:
		m.session.AddToCart(m.ctx, msg.Product)
		m.sync()

	case components.CartActionMsg:
		m.handleCartAction(msg)

	case components.BackToListMsg:
		m.setFocus(FocusCatalog)

	case errorMsg:
		m.lastError = msg.err
		common.LogError(msg.err, "TUI error", common.Fields{"context": msg.context})
	}

	return m, nil
}

// handleKey routes a key press by focus. Text fields swallow everything but
// their exit keys so letters never trigger shortcuts while typing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.focus {
	case FocusSearch, FocusBillete, FocusDivisas:
		return m.updateInput(msg)
	case FocusQuantity:
		m.updateQuantity(msg)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case key.Matches(msg, m.keymap.Search):
		m.setFocus(FocusSearch)
		return m, textinput.Blink
	case key.Matches(msg, m.keymap.Billete):
		m.setFocus(FocusBillete)
		return m, textinput.Blink
	case key.Matches(msg, m.keymap.Divisas):
		m.setFocus(FocusDivisas)
		return m, textinput.Blink
	case key.Matches(msg, m.keymap.Voice):
		if m.listening {
			return m, nil
		}
		m.listening = true
		return m, listenVoice(m.ctx, m.voice)
	case key.Matches(msg, m.keymap.ClearCart):
		m.session.ClearCart(m.ctx)
		m.sync()
		m.setFocus(FocusCatalog)
		return m, nil
	case key.Matches(msg, m.keymap.SwitchPanel):
		switch {
		case m.focus == FocusCart:
			m.setFocus(FocusCatalog)
		case !m.cartPanel.Empty():
			m.setFocus(FocusCart)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case FocusCatalog:
		m.catalogList, cmd = m.catalogList.Update(msg)
		m.checkSentinel()
	case FocusCart:
		m.cartPanel, cmd = m.cartPanel.Update(msg)
	}
	return m, cmd
}

// updateInput feeds a key to the focused text field and applies its value.
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Done) {
		m.setFocus(FocusCatalog)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case FocusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
		if term := m.searchInput.Value(); term != m.session.Term() {
			m.session.SetSearchTerm(term)
			m.catalogList.ResetCursor()
		}
	case FocusBillete:
		m.billeteInput, cmd = m.billeteInput.Update(msg)
		m.session.SetRateBillete(m.billeteInput.Value())
	case FocusDivisas:
		m.divisasInput, cmd = m.divisasInput.Update(msg)
		m.session.SetRateDivisas(m.divisasInput.Value())
	}

	m.sync()
	return m, cmd
}

// updateQuantity edits the raw quantity text of the line being edited.
// Leaving the field commits it.
func (m *Model) updateQuantity(msg tea.KeyMsg) {
	code := m.cartPanel.Editing()
	edits := m.session.Edits()
	raw, _ := edits.Value(code)

	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab:
		edits.Blur(m.ctx, code)
		m.cartPanel.SetEditing("")
		m.focus = FocusCart
	case tea.KeyBackspace:
		runes := []rune(raw)
		if len(runes) > 0 {
			edits.Type(m.ctx, code, string(runes[:len(runes)-1]))
		}
	case tea.KeySpace:
		edits.Type(m.ctx, code, raw+" ")
	case tea.KeyRunes:
		edits.Type(m.ctx, code, raw+string(msg.Runes))
	}

	m.sync()
	m.noteCartError()
}

func (m *Model) handleCartAction(msg components.CartActionMsg) {
	store := m.session.Cart()

	switch msg.Action {
	case components.CartIncrement:
		store.Increment(m.ctx, msg.Code)
	case components.CartDecrement:
		store.Decrement(m.ctx, msg.Code)
	case components.CartRemove:
		m.session.RemoveFromCart(m.ctx, msg.Code)
	case components.CartEditQuantity:
		line, ok := store.Line(msg.Code)
		if !ok {
			return
		}
		m.session.Edits().Type(m.ctx, msg.Code, strconv.Itoa(line.Quantity))
		m.cartPanel.SetEditing(msg.Code)
		m.focus = FocusQuantity
	}

	m.sync()
	m.noteCartError()
	if m.cartPanel.Empty() && m.focus == FocusCart {
		m.setFocus(FocusCatalog)
	}
}

// checkSentinel reports the sentinel row level to the session and shows the
// next page on each arrival.
func (m *Model) checkSentinel() {
	if m.session.SentinelVisible(m.catalogList.AtSentinel()) {
		m.sync()
		m.session.SentinelVisible(m.catalogList.AtSentinel())
	}
}

// noteCartError surfaces the most recent persistence failure. The cart keeps
// working in memory either way.
func (m *Model) noteCartError() {
	if err := m.session.Cart().LastError(); err != nil {
		m.lastError = err
	}
}

// sync copies session state into the components.
func (m *Model) sync() {
	m.catalogList.SetItems(
		m.session.Visible(),
		m.session.Window().Total(),
		m.session.HasMore(),
		m.session.InCart,
	)
	m.cartPanel.SetSummary(m.session.CartSummary(), m.session.Edits().Display)
	m.handleResize()
}

// setFocus moves keyboard focus, blurring whatever had it.
func (m *Model) setFocus(f Focus) {
	m.searchInput.Blur()
	m.billeteInput.Blur()
	m.divisasInput.Blur()
	m.catalogList.Blur()
	if f != FocusQuantity {
		m.cartPanel.Blur()
	}

	switch f {
	case FocusCatalog:
		m.catalogList.Focus()
	case FocusCart:
		m.cartPanel.Focus()
	case FocusSearch:
		m.searchInput.Focus()
	case FocusBillete:
		m.billeteInput.Focus()
	case FocusDivisas:
		m.divisasInput.Focus()
	}
	m.focus = f
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	// Header, status bar and help line.
	bodyHeight := max(6, m.height-7)

	if m.width >= 120 {
		listWidth := m.width * 2 / 3
		m.catalogList.Resize(listWidth, bodyHeight)
		m.cartPanel.Resize(m.width - listWidth - 2)
		return
	}

	cartLines := 0
	if !m.cartPanel.Empty() {
		cartLines = min(8, m.session.Cart().Len()+4)
	}
	m.catalogList.Resize(m.width-2, bodyHeight-cartLines)
	m.cartPanel.Resize(m.width - 2)
}

// Session returns the state container the model drives.
func (m Model) Session() *session.Session { return m.session }

// Focus returns the element that receives key presses.
func (m Model) Focus() Focus { return m.focus }
