package main

import (
	"context"
	"strings"

	"github.com/Veraticus/pricelist/internal/cart"
	"github.com/Veraticus/pricelist/internal/cli"
	"github.com/Veraticus/pricelist/internal/service"
	"github.com/Veraticus/pricelist/internal/session"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [terms...]",
		Short: "Print catalog products matching the search terms",
		Long: `Search the catalog and print the matching products priced at the
configured rates. Every term must appear in the description, code or brand;
accents and case are ignored.

Only the first page of results is printed unless --all is given.`,
		RunE: runSearch,
	}

	cmd.Flags().Bool("all", false, "print every match instead of the first page")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	source, err := a.catalogSource(ctx)
	if err != nil {
		return err
	}

	s, err := loadSession(ctx, a, source, nil)
	if err != nil {
		return err
	}
	s.SetSearchTerm(strings.Join(args, " "))

	products := s.Visible()
	if all, _ := cmd.Flags().GetBool("all"); all {
		products = s.Results()
	}

	return cli.PrintProducts(cmd.OutOrStdout(), products, len(s.Results()))
}

// loadSession fetches the catalog into a fresh session around store at the
// configured rates. Commands other than browse treat a failed load as an error.
func loadSession(ctx context.Context, a *app, source service.CatalogSource, store *cart.Store) (*session.Session, error) {
	result := session.Fetch(ctx, source)
	if result.Err != nil {
		return nil, result.Err
	}

	s := session.New(store,
		session.WithRates(a.settings.RateBillete, a.settings.RateDivisas),
		session.WithProducts(result.Products),
	)
	return s, nil
}
