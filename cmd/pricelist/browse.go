package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/session"
	"github.com/Veraticus/pricelist/internal/tui"
	"github.com/Veraticus/pricelist/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Open the interactive price list.

Type to search, set the billete and divisas rates, and add products to the
cart. The cart is saved as you go and restored next time.`,
		RunE: runBrowse,
	}

	cmd.Flags().String("theme", "default", "color theme (default, catppuccin-mocha)")
	_ = viper.BindPFlag("ui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	// Logs would corrupt the screen, so they go to a file or nowhere.
	closeLog, err := redirectLogging(a.settings.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	source, err := a.catalogSource(ctx)
	if err != nil {
		return err
	}

	s := session.New(
		a.cartStore(ctx),
		session.WithRates(a.settings.RateBillete, a.settings.RateDivisas),
	)

	return tui.Run(ctx,
		tui.WithSession(s),
		tui.WithSource(source),
		tui.WithLoadTimeout(a.settings.CatalogTimeout),
		tui.WithTheme(themes.GetTheme(viper.GetString("ui.theme"))),
	)
}

func redirectLogging(path string) (func(), error) {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return nil, err
	}
	format := viper.GetString("logging.format")

	if path == "" {
		if err := common.SetupLogger(level, format, io.Discard); err != nil {
			return nil, err
		}
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304 -- path comes from user config
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := common.SetupLogger(level, format, f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}
