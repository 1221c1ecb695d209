package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Veraticus/pricelist/internal/cart"
	"github.com/Veraticus/pricelist/internal/cli"
	"github.com/Veraticus/pricelist/internal/common"
	"github.com/Veraticus/pricelist/internal/model"
	"github.com/Veraticus/pricelist/internal/pricing"
	"github.com/spf13/cobra"
)

func cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the saved cart",
		Long: `Work with the cart saved by the price list.

Prices are always recomputed at the configured rates; the cart only keeps
each product's base amounts.`,
	}

	cmd.AddCommand(cartShowCmd())
	cmd.AddCommand(cartAddCmd())
	cmd.AddCommand(cartLineCmd("remove CODE", "Remove a product from the cart", func(ctx context.Context, store *cart.Store, code string) {
		store.Remove(ctx, code)
	}))
	cmd.AddCommand(cartLineCmd("inc CODE", "Add one unit of a product", func(ctx context.Context, store *cart.Store, code string) {
		store.Increment(ctx, code)
	}))
	cmd.AddCommand(cartLineCmd("dec CODE", "Take one unit of a product away (not below zero)", func(ctx context.Context, store *cart.Store, code string) {
		store.Decrement(ctx, code)
	}))
	cmd.AddCommand(cartSetCmd())
	cmd.AddCommand(cartClearCmd())

	return cmd
}

func cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart priced at the current rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCart(cmd, func(context.Context, *app, *cart.Store) error { return nil })
		},
	}
}

func cartAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add CODE",
		Short: "Add a catalog product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, func(ctx context.Context, a *app, store *cart.Store) error {
				source, err := a.catalogSource(ctx)
				if err != nil {
					return err
				}
				s, err := loadSession(ctx, a, source, store)
				if err != nil {
					return err
				}

				product, ok := findProduct(s.Products(), args[0])
				if !ok {
					return common.NewUserError(fmt.Sprintf("product %q is not in the catalog", args[0]), common.ErrNotFound)
				}
				s.AddToCart(ctx, product)
				return nil
			})
		},
	}
}

func cartLineCmd(use, short string, apply func(context.Context, *cart.Store, string)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCart(cmd, func(ctx context.Context, _ *app, store *cart.Store) error {
				if !store.Contains(args[0]) {
					return notInCart(args[0])
				}
				apply(ctx, store, args[0])
				return nil
			})
		},
	}
}

func cartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set CODE QUANTITY",
		Short: "Set the quantity of a product in the cart",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 0 {
				return common.NewUserError(fmt.Sprintf("quantity must be a whole number of zero or more, got %q", args[1]), common.ErrInvalidConfig)
			}

			return withCart(cmd, func(ctx context.Context, _ *app, store *cart.Store) error {
				if !store.Contains(args[0]) {
					return notInCart(args[0])
				}
				store.SetQuantity(ctx, args[0], n)
				return nil
			})
		},
	}
}

func cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCart(cmd, func(ctx context.Context, _ *app, store *cart.Store) error {
				store.Clear(ctx)
				return nil
			})
		},
	}
}

// withCart opens the saved cart, applies change and prints the result.
func withCart(cmd *cobra.Command, change func(context.Context, *app, *cart.Store) error) error {
	ctx := cmd.Context()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	store := a.cartStore(ctx)
	if err := change(ctx, a, store); err != nil {
		return err
	}

	if err := store.LastError(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("The cart could not be saved: "+err.Error()))
	}

	rates := model.ParseRates(a.settings.RateBillete, a.settings.RateDivisas)
	return cli.PrintCart(cmd.OutOrStdout(), pricing.PriceCart(store.Lines(), rates))
}

func findProduct(products []model.Product, code string) (model.Product, bool) {
	for _, p := range products {
		if p.Code == code {
			return p, true
		}
	}
	return model.Product{}, false
}

func notInCart(code string) error {
	return common.NewUserError(fmt.Sprintf("product %q is not in the cart", code), common.ErrNotFound)
}
