// Package storage persists imported catalogs and the cart.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/pricelist/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidProduct = errors.New("invalid product")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateProducts checks a catalog before it replaces the stored one. An
// empty catalog is valid; a nil one is not.
func validateProducts(products []model.Product) error {
	if products == nil {
		return fmt.Errorf("%w: products", ErrNilParameter)
	}
	for i := range products {
		if strings.TrimSpace(products[i].Code) == "" {
			return fmt.Errorf("%w: product at index %d has no code", ErrInvalidProduct, i)
		}
	}
	return nil
}
