// Package service defines the interfaces shared between the price list components.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/pricelist/internal/model"
)

// CatalogSource supplies the product list once per session.
type CatalogSource interface {
	// Load returns the catalog in feed order. Failures are wrapped with
	// common.ErrLoadFailure.
	Load(ctx context.Context) ([]model.Product, error)
	// Name identifies the source in logs.
	Name() string
}

// KeyValueStore is the byte store the cart is persisted to.
type KeyValueStore interface {
	// Read returns common.ErrNotFound when key has never been written.
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}

// CatalogStore keeps an imported copy of a catalog.
type CatalogStore interface {
	ReplaceProducts(ctx context.Context, products []model.Product, progress func(done int)) error
	CatalogSource
}

// VoiceInput delivers one transcript or one error per request.
type VoiceInput interface {
	Listen(ctx context.Context) (string, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
