package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/shopspring/decimal"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func createTestProducts() []model.Product {
	return []model.Product{
		{
			Code:         "Z10",
			Description:  "Rodillo",
			Brand:        "Atlas",
			Currency:     model.CurrencyBillete,
			Tax:          model.Tax105,
			Price:        decimal.RequireFromString("999.5"),
			PriceForeign: decimal.NewFromInt(10),
			Rate:         decimal.NewFromInt(1000),
		},
		{
			Code:        "A1",
			Description: "Pincel",
			Currency:    model.CurrencyLocal,
			Price:       decimal.NewFromInt(1200),
		},
		{
			Code:         "M3",
			Description:  "Lija",
			Currency:     model.CurrencyDivisas,
			Tax:          model.Tax21,
			PriceForeign: decimal.RequireFromString("2.25"),
		},
	}
}

func TestSQLiteStorage_ReplaceProducts(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	var progress []int
	products := createTestProducts()
	if err := store.ReplaceProducts(ctx, products, func(done int) { progress = append(progress, done) }); err != nil {
		t.Fatalf("ReplaceProducts() error = %v", err)
	}

	if len(progress) != 3 || progress[2] != 3 {
		t.Errorf("progress = %v, want [1 2 3]", progress)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != len(products) {
		t.Fatalf("Load() returned %d products, want %d", len(loaded), len(products))
	}

	for i := range products {
		want, got := products[i], loaded[i]
		if got.Code != want.Code || got.Description != want.Description || got.Brand != want.Brand {
			t.Errorf("product %d = %+v, want %+v", i, got, want)
		}
		if got.Currency != want.Currency || got.Tax != want.Tax {
			t.Errorf("product %d terms = %s/%s, want %s/%s", i, got.Currency, got.Tax, want.Currency, want.Tax)
		}
		if !got.Price.Equal(want.Price) || !got.PriceForeign.Equal(want.PriceForeign) || !got.Rate.Equal(want.Rate) {
			t.Errorf("product %d prices = %s/%s/%s, want %s/%s/%s", i,
				got.Price, got.PriceForeign, got.Rate, want.Price, want.PriceForeign, want.Rate)
		}
	}

	// A second import replaces rather than appends.
	if err := store.ReplaceProducts(ctx, products[:1], nil); err != nil {
		t.Fatalf("second ReplaceProducts() error = %v", err)
	}
	loaded, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 1 || loaded[0].Code != "Z10" {
		t.Errorf("Load() after replace = %+v, want only Z10", loaded)
	}

	imp, err := store.LastImport(ctx)
	if err != nil {
		t.Fatalf("LastImport() error = %v", err)
	}
	if imp.ProductCount != 1 {
		t.Errorf("LastImport().ProductCount = %d, want 1", imp.ProductCount)
	}
}

func TestSQLiteStorage_ReplaceProductsInvalid(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.ReplaceProducts(ctx, createTestProducts(), nil); err != nil {
		t.Fatalf("ReplaceProducts() error = %v", err)
	}

	bad := append(createTestProducts(), model.Product{Description: "no code"})
	err := store.ReplaceProducts(ctx, bad, nil)
	if !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("ReplaceProducts() error = %v, want ErrInvalidProduct", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded) != 3 {
		t.Errorf("stored catalog changed after rejected import: %d products", len(loaded))
	}
}

func TestSQLiteStorage_EmptyCatalog(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("Load() = %v, want empty non-nil slice", loaded)
	}

	if _, err := store.LastImport(ctx); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("LastImport() error = %v, want ErrNotFound", err)
	}

	if err := store.ReplaceProducts(ctx, []model.Product{}, nil); err != nil {
		t.Errorf("ReplaceProducts(empty) error = %v", err)
	}
}

func TestSQLiteStorage_LoadClosed(t *testing.T) {
	store, cleanup := createTestStorage(t)
	cleanup()

	_, err := store.Load(context.Background())
	if !errors.Is(err, common.ErrLoadFailure) {
		t.Errorf("Load() on closed db error = %v, want ErrLoadFailure", err)
	}
}

func TestSQLiteStorage_KeyValue(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.Read(ctx, "priceListCart"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Read() of missing key error = %v, want ErrNotFound", err)
	}

	if err := store.Write(ctx, "priceListCart", []byte(`[]`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := store.Write(ctx, "priceListCart", []byte(`[{"code":"Z10","quantity":2}]`)); err != nil {
		t.Fatalf("overwrite error = %v", err)
	}

	got, err := store.Read(ctx, "priceListCart")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != `[{"code":"Z10","quantity":2}]` {
		t.Errorf("Read() = %s", got)
	}

	if err := store.Write(ctx, " ", []byte("x")); !errors.Is(err, ErrEmptyString) {
		t.Errorf("Write() with blank key error = %v, want ErrEmptyString", err)
	}
}

func TestSQLiteStorage_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := store.Write(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got, err := store.Read(ctx, "k"); err != nil || string(got) != "v" {
		t.Errorf("Read() = %q, %v", got, err)
	}
	if store.Name() != "sqlite::memory:" {
		t.Errorf("Name() = %q", store.Name())
	}
}

func TestSQLiteStorage_Migrations(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store1, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err2 := store1.Migrate(ctx); err2 != nil {
		t.Fatalf("Initial migration failed: %v", err2)
	}
	if err2 := store1.Write(ctx, "priceListCart", []byte("[]")); err2 != nil {
		t.Fatalf("Write() error = %v", err2)
	}
	_ = store1.Close()

	// Running migrations again must not error or lose data.
	store2, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer func() { _ = store2.Close() }()

	if err := store2.Migrate(ctx); err != nil {
		t.Fatalf("Repeated migration failed: %v", err)
	}
	if _, err := store2.Read(ctx, "priceListCart"); err != nil {
		t.Errorf("data lost after repeated migration: %v", err)
	}
}
