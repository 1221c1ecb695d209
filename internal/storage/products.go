package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/Veraticus/pricelist/internal/service"
	"github.com/shopspring/decimal"
)

var (
	_ service.CatalogStore  = (*SQLiteStorage)(nil)
	_ service.KeyValueStore = (*SQLiteStorage)(nil)
)

// CatalogImport describes the most recent ReplaceProducts call.
type CatalogImport struct {
	ImportedAt   time.Time
	ProductCount int
}

// ReplaceProducts swaps the stored catalog for products in a single
// transaction, keeping their order. progress, if set, is called after each
// inserted product with the running count.
func (s *SQLiteStorage) ReplaceProducts(ctx context.Context, products []model.Product, progress func(done int)) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProducts(products); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				slog.Error("Failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (position, code, description, brand, currency, tes, price, price_usd, rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			slog.Error("Failed to close statement", "error", closeErr)
		}
	}()

	for i, p := range products {
		_, err = stmt.ExecContext(ctx,
			i,
			p.Code,
			p.Description,
			p.Brand,
			string(p.Currency),
			string(p.Tax),
			p.Price.String(),
			p.PriceForeign.String(),
			p.Rate.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.Code, err)
		}
		if progress != nil {
			progress(i + 1)
		}
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO catalog_imports (product_count) VALUES (?)`, len(products)); err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit products: %w", err)
	}

	slog.Info("Replaced stored catalog", "products", len(products))
	return nil
}

// Load implements service.CatalogSource, returning the stored catalog in
// import order.
func (s *SQLiteStorage) Load(ctx context.Context) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	products, err := s.getProducts(ctx, s.db)
	if err != nil {
		return nil, common.LoadFailure(s.Name(), err)
	}
	return products, nil
}

func (s *SQLiteStorage) getProducts(ctx context.Context, q queryable) ([]model.Product, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT code, description, brand, currency, tes, price, price_usd, rate
		FROM products
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("Failed to close rows", "error", closeErr)
		}
	}()

	products := []model.Product{}
	for rows.Next() {
		var (
			p                    model.Product
			currency, tax        string
			price, foreign, rate string
		)
		if err := rows.Scan(&p.Code, &p.Description, &p.Brand, &currency, &tax, &price, &foreign, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		p.Currency = model.ParseCurrency(currency)
		p.Tax = model.ParseTaxCode(tax)
		if p.Price, err = parseStoredDecimal(price); err != nil {
			return nil, fmt.Errorf("product %s price: %w", p.Code, err)
		}
		if p.PriceForeign, err = parseStoredDecimal(foreign); err != nil {
			return nil, fmt.Errorf("product %s price_usd: %w", p.Code, err)
		}
		if p.Rate, err = parseStoredDecimal(rate); err != nil {
			return nil, fmt.Errorf("product %s rate: %w", p.Code, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

// LastImport returns the most recent catalog import, or common.ErrNotFound.
func (s *SQLiteStorage) LastImport(ctx context.Context) (*CatalogImport, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var imp CatalogImport
	err := s.db.QueryRowContext(ctx, `
		SELECT product_count, imported_at
		FROM catalog_imports
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&imp.ProductCount, &imp.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last import: %w", err)
	}
	return &imp, nil
}

func parseStoredDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
