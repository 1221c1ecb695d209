package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/pricelist/internal/cart"
	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func z10() model.Product {
	return model.Product{
		Code:         "Z10",
		Description:  "Rodillo lana",
		Brand:        "Atlas",
		Currency:     model.CurrencyBillete,
		Tax:          model.Tax105,
		PriceForeign: decimal.NewFromInt(10),
	}
}

func bigCatalog(n int) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		products[i] = model.Product{
			Code:        fmt.Sprintf("P%03d", i),
			Description: "Látex interior",
			Currency:    model.CurrencyLocal,
			Price:       decimal.NewFromInt(int64(100 + i)),
		}
	}
	return products
}

func TestNewSession(t *testing.T) {
	s := New(nil, WithRates("1000", "1050,5"))

	assert.Equal(t, StatusLoading, s.Status())
	assert.Empty(t, s.Visible())
	assert.False(t, s.HasMore())
	assert.True(t, decimal.NewFromInt(1000).Equal(s.Rates().Billete))
	assert.True(t, decimal.RequireFromString("1050.5").Equal(s.Rates().Divisas))

	billete, divisas := s.RateTexts()
	assert.Equal(t, "1000", billete)
	assert.Equal(t, "1050,5", divisas)
}

func TestCatalogLoadedIsOneShot(t *testing.T) {
	s := New(nil)

	require.True(t, s.CatalogLoaded(bigCatalog(120)))
	assert.Equal(t, StatusReady, s.Status())
	assert.Len(t, s.Visible(), 50)
	assert.True(t, s.HasMore())

	assert.False(t, s.CatalogLoaded(bigCatalog(3)), "second completion is ignored")
	assert.False(t, s.CatalogFailed(errors.New("late failure")))
	assert.Len(t, s.Results(), 120)
	assert.NoError(t, s.LoadError())
}

func TestCatalogFailed(t *testing.T) {
	s := New(nil)

	require.True(t, s.CatalogFailed(errors.New("connection refused")))
	assert.Equal(t, StatusFailed, s.Status())
	assert.ErrorIs(t, s.LoadError(), common.ErrLoadFailure)
	assert.Empty(t, s.Results())

	assert.False(t, s.CatalogLoaded(bigCatalog(3)), "a failed load is final")
	assert.Empty(t, s.Results())
}

func TestApplyLoad(t *testing.T) {
	s := New(nil)
	assert.True(t, s.ApplyLoad(LoadResult{Products: []model.Product{z10()}}))
	assert.Len(t, s.Results(), 1)

	failed := New(nil)
	assert.True(t, failed.ApplyLoad(LoadResult{Err: common.LoadFailure("x", errors.New("boom"))}))
	assert.Equal(t, StatusFailed, failed.Status())
}

func TestRevealWindow(t *testing.T) {
	s := New(nil, WithProducts(bigCatalog(120)))

	assert.Len(t, s.Visible(), 50)
	assert.True(t, s.Reveal())
	assert.Len(t, s.Visible(), 100)
	assert.True(t, s.Reveal())
	assert.Len(t, s.Visible(), 120)
	assert.False(t, s.HasMore())
	assert.False(t, s.Reveal())
	assert.Len(t, s.Visible(), 120)
}

func TestSentinelIsLevelTriggered(t *testing.T) {
	s := New(nil, WithProducts(bigCatalog(200)))

	assert.True(t, s.SentinelVisible(true))
	assert.Equal(t, 100, s.Window().Visible())

	assert.False(t, s.SentinelVisible(true), "staying visible does not reveal again")
	assert.Equal(t, 100, s.Window().Visible())

	assert.False(t, s.SentinelVisible(false))
	assert.True(t, s.SentinelVisible(true))
	assert.Equal(t, 150, s.Window().Visible())
}

func TestSearchTermResetsWindow(t *testing.T) {
	products := append(bigCatalog(120), z10())
	s := New(nil, WithProducts(products))
	s.Reveal()
	require.Equal(t, 100, s.Window().Visible())

	s.SetSearchTerm("LATEX")
	assert.Equal(t, 120, s.Window().Total())
	assert.Equal(t, 50, s.Window().Visible())

	s.Reveal()
	s.SetSearchTerm("LATEX")
	assert.Equal(t, 100, s.Window().Visible(), "an unchanged term keeps the window")

	s.SetSearchTerm("rodillo")
	assert.Equal(t, 1, s.Window().Total())
	assert.Equal(t, 1, s.Window().Visible())

	s.SetSearchTerm("10001 z10")
	assert.Empty(t, s.Visible())
	assert.False(t, s.HasMore())
}

func TestRateChangeRepricesWithoutReset(t *testing.T) {
	products := append(bigCatalog(120), z10())
	s := New(nil, WithProducts(products), WithRates("1000", ""))
	s.Reveal()

	s.SetRateBillete("1200")
	assert.Equal(t, 100, s.Window().Visible(), "rates do not move the window")

	results := s.Results()
	last := results[len(results)-1]
	require.Equal(t, "Z10", last.Code)
	assert.True(t, decimal.NewFromInt(13260).Equal(last.EffectivePrice), "got %s", last.EffectivePrice)
	assert.True(t, decimal.NewFromInt(1200).Equal(last.AppliedRate))

	s.SetRateDivisas("abc")
	assert.True(t, s.Rates().Divisas.IsZero())
}

func TestCartRepricesWithRates(t *testing.T) {
	ctx := context.Background()
	s := New(nil, WithProducts([]model.Product{z10()}), WithRates("1000", ""))

	s.AddToCart(ctx, z10())
	s.AddToCart(ctx, z10())
	assert.True(t, s.InCart("Z10"))

	summary := s.CartSummary()
	require.Len(t, summary.Lines, 1)
	assert.Equal(t, 2, summary.Units)
	assert.True(t, decimal.NewFromInt(22100).Equal(summary.Total), "got %s", summary.Total)

	s.SetRateBillete("1200")
	assert.True(t, decimal.NewFromInt(26520).Equal(s.CartSummary().Total))
}

func TestRemoveAndClearDropEdits(t *testing.T) {
	ctx := context.Background()
	s := New(cart.NewStore(cart.NewMemoryStore(), ""), WithProducts([]model.Product{z10()}))

	s.AddToCart(ctx, z10())
	s.Edits().Type(ctx, "Z10", "")
	s.RemoveFromCart(ctx, "Z10")
	assert.False(t, s.Edits().Editing("Z10"))
	assert.False(t, s.InCart("Z10"))

	s.AddToCart(ctx, z10())
	s.Edits().Type(ctx, "Z10", "")
	s.ClearCart(ctx)
	assert.False(t, s.Edits().Editing("Z10"))
	assert.Zero(t, s.Cart().Len())
}

func TestVoiceResult(t *testing.T) {
	s := New(nil, WithProducts([]model.Product{z10()}))
	s.SetSearchTerm("latex")

	s.VoiceResult("", common.ErrNoSpeech)
	assert.Equal(t, "latex", s.Term())
	assert.NoError(t, s.VoiceError())

	s.VoiceResult("", common.ErrUnsupportedVoice)
	assert.Equal(t, "latex", s.Term())
	assert.ErrorIs(t, s.VoiceError(), common.ErrUnsupportedVoice)

	s.VoiceResult("rodillo atlas", nil)
	assert.Equal(t, "rodillo atlas", s.Term())
	assert.NoError(t, s.VoiceError())
	assert.Len(t, s.Visible(), 1)
}

type stubSource struct {
	err      error
	products []model.Product
}

func (s stubSource) Load(context.Context) ([]model.Product, error) { return s.products, s.err }
func (s stubSource) Name() string                                  { return "stub" }

func TestFetch(t *testing.T) {
	ctx := context.Background()

	ok := Fetch(ctx, stubSource{products: []model.Product{z10()}})
	assert.NoError(t, ok.Err)
	assert.Len(t, ok.Products, 1)

	failed := Fetch(ctx, stubSource{err: errors.New("dial tcp: refused")})
	assert.ErrorIs(t, failed.Err, common.ErrLoadFailure)
	assert.Nil(t, failed.Products)
}

func TestStartLoadDeliversOnce(t *testing.T) {
	results := make(chan LoadResult, 2)
	StartLoad(context.Background(), stubSource{products: []model.Product{z10()}}, func(r LoadResult) {
		results <- r
	})

	select {
	case r := <-results:
		s := New(nil)
		assert.True(t, s.ApplyLoad(r))
		assert.Len(t, s.Results(), 1)
	case <-time.After(5 * time.Second):
		t.Fatal("catalog load never completed")
	}

	select {
	case <-results:
		t.Fatal("result delivered twice")
	case <-time.After(50 * time.Millisecond):
	}
}

type stubVoice struct {
	err        error
	transcript string
}

func (v stubVoice) Listen(context.Context) (string, error) { return v.transcript, v.err }

func TestListen(t *testing.T) {
	ctx := context.Background()

	_, err := Listen(ctx, nil)
	assert.ErrorIs(t, err, common.ErrUnsupportedVoice)

	text, err := Listen(ctx, stubVoice{transcript: "lija"})
	require.NoError(t, err)
	assert.Equal(t, "lija", text)
}
