package tui

import (
	"context"
	"time"

	"github.com/Veraticus/pricelist/internal/service"
	"github.com/Veraticus/pricelist/internal/session"
	"github.com/Veraticus/pricelist/internal/tui/themes"
)

// DefaultLoadTimeout bounds the startup catalog fetch.
const DefaultLoadTimeout = 30 * time.Second

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Source      service.CatalogSource
	Voice       service.VoiceInput
	Session     *session.Session
	Context     context.Context
	LoadTimeout time.Duration
	Width       int
	Height      int
	ShowHelp    bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:       themes.Default,
		Context:     context.Background(),
		LoadTimeout: DefaultLoadTimeout,
		Width:       80,
		Height:      24,
		ShowHelp:    true,
	}
}

// WithSession sets the state container the TUI drives.
func WithSession(s *session.Session) Option {
	return func(c *Config) {
		c.Session = s
	}
}

// WithSource sets where the catalog is fetched from at startup. Without a
// source the session must already hold its catalog.
func WithSource(source service.CatalogSource) Option {
	return func(c *Config) {
		c.Source = source
	}
}

// WithVoice enables voice search through input.
func WithVoice(input service.VoiceInput) Option {
	return func(c *Config) {
		c.Voice = input
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithLoadTimeout bounds the catalog fetch.
func WithLoadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.LoadTimeout = timeout
		}
	}
}

// WithContext sets the context used for cart writes and background work.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		if ctx != nil {
			c.Context = ctx
		}
	}
}

// WithHelp toggles the short help line.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
