package tui

import (
	"context"
	"time"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/service"
	"github.com/Veraticus/pricelist/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// loadCatalog fetches the catalog once. The result arrives as catalogLoadedMsg.
func loadCatalog(ctx context.Context, source service.CatalogSource, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if source == nil {
			return catalogLoadedMsg{result: session.LoadResult{
				Err: common.LoadFailure("catalog", common.ErrMissingConfig),
			}}
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return catalogLoadedMsg{result: session.Fetch(ctx, source)}
	}
}

// listenVoice captures one utterance from input.
func listenVoice(ctx context.Context, input service.VoiceInput) tea.Cmd {
	return func() tea.Msg {
		transcript, err := session.Listen(ctx, input)
		return voiceResultMsg{transcript: transcript, err: err}
	}
}
