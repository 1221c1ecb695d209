// Package session holds the state of one price list session: the catalog,
// the search term, the exchange rates, the reveal window and the cart.
//
// Every mutator recomputes the derived state before it returns, so readers
// never observe a filtered view that is stale with respect to its inputs.
// A Session is not safe for concurrent use; callers serialize events.
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/pricelist/internal/cart"
	"github.com/Veraticus/pricelist/internal/catalog"
	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/Veraticus/pricelist/internal/pricing"
)

// Status is the catalog load state.
type Status int

// Load states.
const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Option configures a Session.
type Option func(*Session)

// WithRates sets the initial rate texts.
func WithRates(billete, divisas string) Option {
	return func(s *Session) {
		s.rateBillete = billete
		s.rateDivisas = divisas
	}
}

// WithProducts starts the session with an already loaded catalog.
func WithProducts(products []model.Product) Option {
	return func(s *Session) {
		s.products = products
		s.status = StatusReady
	}
}

// Session is the single state container.
type Session struct {
	loadErr     error
	voiceErr    error
	cart        *cart.Store
	edits       *cart.EditBuffer
	term        string
	rateBillete string
	rateDivisas string
	products    []model.Product
	results     []model.PricedProduct
	rates       model.ExchangeRates
	window      catalog.Window
	status      Status
	sentinel    bool
}

// New creates a session around store. A nil store gets an in-memory cart.
func New(store *cart.Store, opts ...Option) *Session {
	if store == nil {
		store = cart.NewStore(nil, "")
	}
	s := &Session{
		cart:   store,
		edits:  cart.NewEditBuffer(store),
		status: StatusLoading,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rates = model.ParseRates(s.rateBillete, s.rateDivisas)
	s.refilter()
	s.window.Reset(len(s.results))
	return s
}

// refilter recomputes the priced, filtered view from the current inputs.
func (s *Session) refilter() {
	s.results = catalog.Filter(s.products, s.term, s.rates)
}

// Term is the current search term.
func (s *Session) Term() string { return s.term }

// RateTexts returns the rate inputs as typed.
func (s *Session) RateTexts() (billete, divisas string) {
	return s.rateBillete, s.rateDivisas
}

// Rates returns the parsed exchange rates.
func (s *Session) Rates() model.ExchangeRates { return s.rates }

// Status is the catalog load state.
func (s *Session) Status() Status { return s.status }

// LoadError is the catalog load failure, if any.
func (s *Session) LoadError() error { return s.loadErr }

// VoiceError is the last voice input failure worth showing.
func (s *Session) VoiceError() error { return s.voiceErr }

// Products is the raw catalog.
func (s *Session) Products() []model.Product { return s.products }

// SetSearchTerm replaces the search term. A changed term starts the reveal
// window over at one page.
func (s *Session) SetSearchTerm(term string) {
	if term == s.term {
		return
	}
	s.term = term
	s.refilter()
	s.window.Reset(len(s.results))
	s.sentinel = false
}

// SetRateBillete replaces the USD billete rate text.
func (s *Session) SetRateBillete(text string) {
	s.rateBillete = text
	s.applyRates()
}

// SetRateDivisas replaces the USD divisas rate text.
func (s *Session) SetRateDivisas(text string) {
	s.rateDivisas = text
	s.applyRates()
}

// applyRates reprices the view. Rates never change which products match,
// so the window keeps its position.
func (s *Session) applyRates() {
	s.rates = model.ParseRates(s.rateBillete, s.rateDivisas)
	s.refilter()
	s.window.SetTotal(len(s.results))
}

// Reveal shows one more page of results and reports whether anything new
// became visible.
func (s *Session) Reveal() bool {
	return s.window.Reveal()
}

// SentinelVisible feeds the level of the "more results" marker. Each
// transition from hidden to visible reveals one page.
func (s *Session) SentinelVisible(visible bool) bool {
	rising := visible && !s.sentinel
	s.sentinel = visible
	if !rising {
		return false
	}
	return s.Reveal()
}

// CatalogLoaded completes the catalog load with products. Only the first
// completion counts; it reports whether this one was applied.
func (s *Session) CatalogLoaded(products []model.Product) bool {
	if s.status != StatusLoading {
		slog.Warn("Ignoring repeated catalog completion", "status", s.status.String(), "products", len(products))
		return false
	}
	if products == nil {
		products = []model.Product{}
	}
	s.products = products
	s.status = StatusReady
	s.refilter()
	s.window.Reset(len(s.results))
	slog.Info("Catalog loaded", "products", len(products))
	return true
}

// CatalogFailed completes the catalog load with an error. The catalog stays
// empty and no retry is attempted.
func (s *Session) CatalogFailed(err error) bool {
	if s.status != StatusLoading {
		slog.Warn("Ignoring repeated catalog completion", "status", s.status.String(), "error", err)
		return false
	}
	if !errors.Is(err, common.ErrLoadFailure) {
		err = common.LoadFailure("catalog", err)
	}
	s.loadErr = err
	s.status = StatusFailed
	common.LogError(err, "Catalog load failed", nil)
	return true
}

// ApplyLoad completes the catalog load with r.
func (s *Session) ApplyLoad(r LoadResult) bool {
	if r.Err != nil {
		return s.CatalogFailed(r.Err)
	}
	return s.CatalogLoaded(r.Products)
}

// VoiceResult applies a voice input outcome. A transcript replaces the
// search term wholesale; "no speech" is ignored; other errors are kept for
// display.
func (s *Session) VoiceResult(transcript string, err error) {
	switch {
	case err == nil:
		s.voiceErr = nil
		s.SetSearchTerm(transcript)
	case errors.Is(err, common.ErrNoSpeech):
		slog.Debug("Voice input heard nothing")
	default:
		s.voiceErr = err
		common.LogError(err, "Voice input failed", nil)
	}
}

// Results is the whole filtered, priced catalog.
func (s *Session) Results() []model.PricedProduct { return s.results }

// Visible is the revealed prefix of Results.
func (s *Session) Visible() []model.PricedProduct {
	return catalog.Slice(s.window, s.results)
}

// Window is the reveal window state.
func (s *Session) Window() catalog.Window { return s.window }

// HasMore reports whether more results can be revealed.
func (s *Session) HasMore() bool { return s.window.HasMore() }

// Cart is the cart store.
func (s *Session) Cart() *cart.Store { return s.cart }

// Edits is the quantity edit buffer.
func (s *Session) Edits() *cart.EditBuffer { return s.edits }

// InCart reports whether code has a cart line.
func (s *Session) InCart(code string) bool { return s.cart.Contains(code) }

// CartSummary prices the cart at the current rates.
func (s *Session) CartSummary() pricing.CartSummary {
	return pricing.PriceCart(s.cart.Lines(), s.rates)
}

// AddToCart adds one unit of p.
func (s *Session) AddToCart(ctx context.Context, p model.Product) {
	s.cart.Add(ctx, p)
}

// RemoveFromCart deletes the line for code and any pending edit for it.
func (s *Session) RemoveFromCart(ctx context.Context, code string) {
	s.edits.Abandon(code)
	s.cart.Remove(ctx, code)
}

// ClearCart empties the cart and drops every pending edit.
func (s *Session) ClearCart(ctx context.Context) {
	s.edits.Reset()
	s.cart.Clear(ctx)
}
