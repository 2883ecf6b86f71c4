package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fjod/go_shop/internal/session"
)

func newOrdersCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect and manage placed orders (admin)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all orders",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			token, err := a.requireRole(ctx, session.RoleAdmin)
			if err != nil {
				return err
			}
			orders, err := a.API.Orders(ctx, token)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintln(a.Out, "no orders")
				return nil
			}
			for _, o := range orders {
				fmt.Fprintf(a.Out, "%d\t%s\tuser %d\t%d items\t%s\n",
					o.OrderID, o.Status, o.UserID, len(o.Items), o.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	setStatus := &cobra.Command{
		Use:   "set-status <order-id> <status>",
		Short: "Update an order's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			a := app()
			ctx := c.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("order id must be a number: %q", args[0])
			}
			token, err := a.requireRole(ctx, session.RoleAdmin)
			if err != nil {
				return err
			}
			if err := a.API.UpdateOrderStatus(ctx, token, id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "order %d is now %s\n", id, args[1])
			return nil
		},
	}

	cmd.AddCommand(list, setStatus)
	return cmd
}
