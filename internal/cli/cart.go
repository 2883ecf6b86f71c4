package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fjod/go_shop/internal/cart"
)

func newCartCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show cart contents and totals",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			items := a.Store.Cart()
			if len(items) == 0 {
				fmt.Fprintln(a.Out, "your cart is empty")
				return nil
			}
			for _, item := range items {
				fmt.Fprintf(a.Out, "%d\t%s\tx%d\t$%s each\n", item.ProductID, item.Name, item.Quantity, item.BasePrice)
			}
			totals, err := cart.Derive(items, a.Config.TaxRate)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "subtotal: $%s\ntax: $%s\ntotal: $%s\n",
				cart.FormatAmount(totals.Subtotal),
				cart.FormatAmount(totals.Tax),
				cart.FormatAmount(totals.Total))
			return nil
		},
	}

	var qty int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a := app()
			ctx := c.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("product id must be a number: %q", args[0])
			}
			product, err := a.API.ProductByID(ctx, id)
			if err != nil {
				return err
			}

			next, err := cart.Add(a.Store.Cart(), *product, qty)
			if errors.Is(err, cart.ErrOutOfStock) {
				fmt.Fprintf(a.Out, "out of stock: only %d of %q available\n", product.StockQuantity, product.Name)
				return err
			}
			if err != nil {
				return err
			}
			if err := a.Store.UpdateCart(ctx, next); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "added %q, cart has %d items\n", product.Name, cart.Count(next))
			return nil
		},
	}
	add.Flags().IntVar(&qty, "qty", 1, "quantity to add")

	set := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a line item's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			a := app()
			ctx := c.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("product id must be a number: %q", args[0])
			}
			newQty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a number: %q", args[1])
			}

			next, err := cart.SetQuantity(a.Store.Cart(), id, newQty)
			if errors.Is(err, cart.ErrOutOfStock) {
				fmt.Fprintln(a.Out, "out of stock: this item is not available in that quantity")
				return err
			}
			if errors.Is(err, cart.ErrQuantityNotPositive) {
				fmt.Fprintln(a.Out, "quantity must be at least 1; use 'cart remove' to drop an item")
				return err
			}
			if err != nil {
				return err
			}
			return a.Store.UpdateCart(ctx, next)
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a := app()
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("product id must be a number: %q", args[0])
			}
			return a.Store.UpdateCart(c.Context(), cart.Remove(a.Store.Cart(), id))
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(c *cobra.Command, _ []string) error {
			return app().Store.UpdateCart(c.Context(), nil)
		},
	}

	cmd.AddCommand(show, add, set, remove, clear)
	return cmd
}
