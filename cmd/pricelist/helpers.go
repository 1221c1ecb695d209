package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pricelist/internal/cart"
	"github.com/Veraticus/pricelist/internal/catalog"
	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/config"
	"github.com/Veraticus/pricelist/internal/service"
	"github.com/Veraticus/pricelist/internal/sheets"
	"github.com/Veraticus/pricelist/internal/storage"
	"github.com/spf13/viper"
)

// app holds the resources one command invocation shares.
type app struct {
	settings *config.Settings
	db       *storage.SQLiteStorage
	closers  []func() error
}

func newApp() (*app, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return &app{settings: settings}, nil
}

// Close releases every opened backend.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// database opens and migrates the sqlite database on first use.
func (a *app) database(ctx context.Context) (*storage.SQLiteStorage, error) {
	if a.db != nil {
		return a.db, nil
	}

	db, err := storage.NewSQLiteStorage(a.settings.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a.db = db
	a.closers = append(a.closers, db.Close)
	return db, nil
}

// catalogSource builds the configured catalog source.
func (a *app) catalogSource(ctx context.Context) (service.CatalogSource, error) {
	switch a.settings.CatalogSource {
	case config.SourceFile:
		return &catalog.FileSource{Path: a.settings.CatalogPath}, nil
	case config.SourceHTTP:
		return catalog.NewHTTPSource(a.settings.CatalogURL, a.settings.CatalogTimeout), nil
	case config.SourceSQLite:
		db, err := a.database(ctx)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.SourceSheets:
		sheetsConfig, err := config.LoadSheetsConfig(viper.GetViper())
		if err != nil {
			return nil, fmt.Errorf("sheets catalog: %w", err)
		}
		source, err := sheets.NewSource(ctx, *sheetsConfig, slog.Default())
		if err != nil {
			return nil, err
		}
		return source, nil
	default:
		return nil, fmt.Errorf("%w: catalog.source %q", common.ErrInvalidConfig, a.settings.CatalogSource)
	}
}

// cartBackend opens the configured key-value store for the cart.
func (a *app) cartBackend(ctx context.Context) (service.KeyValueStore, error) {
	switch a.settings.CartBackend {
	case config.BackendSQLite:
		db, err := a.database(ctx)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.BackendRedis:
		rs, err := storage.NewRedisStore(ctx, a.settings.RedisURL, a.settings.RedisPrefix)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rs.Close)
		return rs, nil
	case config.BackendMemory:
		return cart.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: cart.backend %q", common.ErrInvalidConfig, a.settings.CartBackend)
	}
}

// cartStore returns the persisted cart. A backend that cannot be opened or
// read leaves an in-memory cart; persistence problems never stop a command.
func (a *app) cartStore(ctx context.Context) *cart.Store {
	kv, err := a.cartBackend(ctx)
	if err != nil {
		common.LogError(err, "Cart storage unavailable, cart will not be saved", common.Fields{
			"backend": a.settings.CartBackend,
		})
		return cart.NewStore(nil, a.settings.CartKey)
	}

	store := cart.NewStore(kv, a.settings.CartKey)
	if err := store.Load(ctx); err != nil {
		slog.Warn("Starting with an empty cart", "error", err)
	}
	return store
}
