package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// New builds the root model from opts.
func New(opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(cfg)
}

// Run starts the interactive price list and blocks until the user quits.
func Run(ctx context.Context, opts ...Option) error {
	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// Create a context that cancels on signal
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Set up terminal cleanup on any exit
	cleanupTerminal := func() {
		// Best-effort restore; errors are ignored.
		_, _ = os.Stdout.Write([]byte("\033[?1049l")) // Exit alternate screen
		_, _ = os.Stdout.Write([]byte("\033[?25h"))   // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))      // Reset colors
	}
	defer cleanupTerminal()

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	opts = append(opts, WithContext(ctx))
	program := tea.NewProgram(New(opts...), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
