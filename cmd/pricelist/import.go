package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pricelist/internal/catalog"
	"github.com/Veraticus/pricelist/internal/cli"
	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/config"
	"github.com/Veraticus/pricelist/internal/service"
	"github.com/Veraticus/pricelist/internal/session"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE]",
		Short: "Copy a catalog into the local database",
		Long: `Load a catalog and store it in the local database so it can be browsed
with catalog.source set to sqlite.

With FILE, the products are read from that JSON file. Otherwise the configured
catalog source is used. The stored catalog is replaced as a whole; an import
that fails or is interrupted leaves the previous catalog in place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	var source service.CatalogSource
	switch {
	case len(args) == 1:
		source = &catalog.FileSource{Path: config.ExpandPath(args[0])}
	case a.settings.CatalogSource == config.SourceSQLite:
		return common.NewUserError("nothing to import: the catalog source is already the database; pass a FILE or choose another --source", common.ErrInvalidConfig)
	default:
		source, err = a.catalogSource(cmd.Context())
		if err != nil {
			return err
		}
	}

	db, err := a.database(cmd.Context())
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), "Import", true)

	slog.Info("Loading catalog", "source", source.Name())
	result := session.Fetch(ctx, source)
	if result.Err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return result.Err
	}

	bar := cli.NewImportProgress(cmd.ErrOrStderr(), len(result.Products))
	if err := db.ReplaceProducts(ctx, result.Products, cli.ProgressFunc(bar)); err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("failed to import catalog: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d products from %s", len(result.Products), source.Name())))

	last, err := db.LastImport(ctx)
	switch {
	case errors.Is(err, common.ErrNotFound):
	case err != nil:
		slog.Warn("Could not read import history", "error", err)
	default:
		slog.Debug("Catalog import recorded", "products", last.ProductCount, "imported_at", last.ImportedAt)
	}

	return nil
}
