package tui

import "github.com/Veraticus/pricelist/internal/session"

// Data loading messages.
type catalogLoadedMsg struct {
	result session.LoadResult
}

// Async operation messages.
type voiceResultMsg struct {
	err        error
	transcript string
}

// Error handling.
type errorMsg struct {
	err     error
	context string
}
