package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/session"
)

func newAddressCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Manage saved shipping addresses",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved addresses",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			token, err := a.requireRole(ctx, session.RoleUser)
			if err != nil {
				return err
			}
			addresses, err := a.API.Addresses(ctx, token)
			if err != nil {
				return err
			}
			if len(addresses) == 0 {
				fmt.Fprintln(a.Out, "no saved addresses")
				return nil
			}
			for _, addr := range addresses {
				marker := " "
				if addr.IsDefault {
					marker = "*"
				}
				fmt.Fprintf(a.Out, "%s %d\t%s, %s, %s %s, %s\n",
					marker, addr.AddressID, addr.StreetAddress, addr.City, addr.State, addr.PostalCode, addr.Country)
			}
			return nil
		},
	}

	var addForm domain.Address
	add := &cobra.Command{
		Use:   "add",
		Short: "Save a new address (limit applies)",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			token, err := a.requireRole(ctx, session.RoleUser)
			if err != nil {
				return err
			}
			// ceiling is checked before any network write
			existing, err := a.API.Addresses(ctx, token)
			if err != nil {
				return err
			}
			if len(existing) >= a.Config.AddressLimit {
				return fmt.Errorf("address limit of %d reached, delete one first", a.Config.AddressLimit)
			}
			if err := a.API.AddAddress(ctx, token, addForm); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, "address saved")
			return nil
		},
	}
	bindAddressFlags(add, &addForm)

	var editForm domain.Address
	update := &cobra.Command{
		Use:   "update <address-id>",
		Short: "Update a saved address",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a := app()
			ctx := c.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("address id must be a number: %q", args[0])
			}
			token, err := a.requireRole(ctx, session.RoleUser)
			if err != nil {
				return err
			}
			editForm.AddressID = id
			if err := a.API.UpdateAddress(ctx, token, editForm); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, "address updated")
			return nil
		},
	}
	bindAddressFlags(update, &editForm)

	del := &cobra.Command{
		Use:   "delete <address-id>",
		Short: "Delete a saved address",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a := app()
			ctx := c.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("address id must be a number: %q", args[0])
			}
			token, err := a.requireRole(ctx, session.RoleUser)
			if err != nil {
				return err
			}
			if err := a.API.DeleteAddress(ctx, token, id); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, "address deleted")
			return nil
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

func bindAddressFlags(cmd *cobra.Command, form *domain.Address) {
	cmd.Flags().StringVar(&form.StreetAddress, "street", "", "street address")
	cmd.Flags().StringVar(&form.City, "city", "", "city")
	cmd.Flags().StringVar(&form.State, "state", "", "state or region")
	cmd.Flags().StringVar(&form.PostalCode, "postal-code", "", "postal code")
	cmd.Flags().StringVar(&form.Country, "country", "", "country")
	cmd.Flags().BoolVar(&form.IsDefault, "default", false, "mark as default")
	_ = cmd.MarkFlagRequired("street")
	_ = cmd.MarkFlagRequired("city")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("postal-code")
	_ = cmd.MarkFlagRequired("country")
}
