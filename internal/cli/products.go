package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fjod/go_shop/internal/domain"
)

func newProductsCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			products, err := a.API.Products(c.Context())
			if err != nil {
				return err
			}
			printProducts(a, products)
			return nil
		},
	}

	var query, category string
	search := &cobra.Command{
		Use:   "search",
		Short: "Search products by query and/or category",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			products, err := a.API.SearchProducts(c.Context(), query, category)
			if err != nil {
				return err
			}
			printProducts(a, products)
			return nil
		},
	}
	search.Flags().StringVar(&query, "query", "", "search text")
	search.Flags().StringVar(&category, "category", "", "category name")

	show := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a := app()
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("product id must be a number: %q", args[0])
			}
			p, err := a.API.ProductByID(c.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "%d\t%s\t$%s\t%d in stock\n%s\n", p.ProductID, p.Name, p.BasePrice, p.StockQuantity, p.Description)
			return nil
		},
	}

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List categories (cached in the session store)",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			cached := a.Store.Categories()
			if len(cached) == 0 {
				fetched, err := a.API.Categories(ctx)
				if err != nil {
					return err
				}
				if err := a.Store.SetCategories(ctx, fetched); err != nil {
					return err
				}
				cached = fetched
			}
			for _, cat := range cached {
				fmt.Fprintf(a.Out, "%d\t%s\n", cat.CategoryID, cat.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(list, search, show, categories)
	return cmd
}

func printProducts(a *App, products []domain.Product) {
	for _, p := range products {
		fmt.Fprintf(a.Out, "%d\t%s\t$%s\t%d in stock\n", p.ProductID, p.Name, p.BasePrice, p.StockQuantity)
	}
}
