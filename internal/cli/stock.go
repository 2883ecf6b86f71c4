package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fjod/go_shop/internal/api"
	"github.com/fjod/go_shop/internal/session"
)

func newStockCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Manage the catalog and stock levels (admin)",
	}

	var product api.NewProduct
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			token, err := a.requireRole(ctx, session.RoleAdmin)
			if err != nil {
				return err
			}
			created, err := a.API.AddProduct(ctx, token, product)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "product %d created\n", created.ProductID)
			return nil
		},
	}
	add.Flags().Int64Var(&product.CategoryID, "category-id", 0, "category id")
	add.Flags().StringVar(&product.Name, "name", "", "product name")
	add.Flags().StringVar(&product.Description, "description", "", "product description")
	add.Flags().StringVar(&product.BasePrice, "price", "", "unit price, e.g. 19.99")
	add.Flags().IntVar(&product.StockQuantity, "stock", 0, "initial stock quantity")
	_ = add.MarkFlagRequired("category-id")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("price")

	pics := &cobra.Command{
		Use:   "pics <product-id> <image-file>...",
		Short: "Attach image files to a product",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			a := app()
			ctx := c.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("product id must be a number: %q", args[0])
			}
			token, err := a.requireRole(ctx, session.RoleAdmin)
			if err != nil {
				return err
			}

			encoded := make([]string, 0, len(args)-1)
			for _, path := range args[1:] {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read image %s: %w", path, err)
				}
				encoded = append(encoded, base64.StdEncoding.EncodeToString(raw))
			}
			if err := a.API.AddProductPics(ctx, token, id, encoded); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "uploaded %d images for product %d\n", len(encoded), id)
			return nil
		},
	}

	increase := newStockAdjustCmd(app, "increase", "Increase a product's stock", func(a *App, c *cobra.Command, token string, id int64, amount int) error {
		return a.API.IncreaseStock(c.Context(), token, id, amount)
	})
	decrease := newStockAdjustCmd(app, "decrease", "Decrease a product's stock", func(a *App, c *cobra.Command, token string, id int64, amount int) error {
		return a.API.DecreaseStock(c.Context(), token, id, amount)
	})

	del := &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Remove a product from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a := app()
			ctx := c.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("product id must be a number: %q", args[0])
			}
			token, err := a.requireRole(ctx, session.RoleAdmin)
			if err != nil {
				return err
			}
			if err := a.API.DeleteProduct(ctx, token, id); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "product %d deleted\n", id)
			return nil
		},
	}

	cmd.AddCommand(add, pics, increase, decrease, del)
	return cmd
}

func newStockAdjustCmd(app func() *App, verb, short string, adjust func(a *App, c *cobra.Command, token string, id int64, amount int) error) *cobra.Command {
	var amount int
	cmd := &cobra.Command{
		Use:   verb + " <product-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a := app()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("product id must be a number: %q", args[0])
			}
			token, err := a.requireRole(c.Context(), session.RoleAdmin)
			if err != nil {
				return err
			}
			if err := adjust(a, c, token, id, amount); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "stock for product %d adjusted\n", id)
			return nil
		},
	}
	cmd.Flags().IntVar(&amount, "amount", 1, "amount to "+verb+" by")
	return cmd
}
