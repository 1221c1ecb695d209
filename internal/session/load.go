package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/Veraticus/pricelist/internal/service"
)

// LoadResult is the outcome of one catalog fetch: products or an error,
// never both.
type LoadResult struct {
	Err      error
	Products []model.Product
}

// Fetch loads the catalog from source.
func Fetch(ctx context.Context, source service.CatalogSource) LoadResult {
	products, err := source.Load(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrLoadFailure) {
			err = common.LoadFailure(source.Name(), err)
		}
		return LoadResult{Err: err}
	}
	slog.Debug("Fetched catalog", "source", source.Name(), "products", len(products))
	return LoadResult{Products: products}
}

// StartLoad fetches the catalog in the background and calls deliver exactly
// once with the result. deliver runs on the fetching goroutine, so it must
// hand the result to whatever serializes access to the Session.
func StartLoad(ctx context.Context, source service.CatalogSource, deliver func(LoadResult)) {
	go func() {
		deliver(Fetch(ctx, source))
	}()
}

// Listen asks input for one transcript. A nil input reports
// common.ErrUnsupportedVoice.
func Listen(ctx context.Context, input service.VoiceInput) (string, error) {
	if input == nil {
		return "", common.ErrUnsupportedVoice
	}
	return input.Listen(ctx)
}
