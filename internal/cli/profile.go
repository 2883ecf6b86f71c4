package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjod/go_shop/internal/api"
	"github.com/fjod/go_shop/internal/session"
)

func newProfileCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and update the account profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the current profile",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			token, err := a.requireRole(ctx, session.RoleUser)
			if err != nil {
				return err
			}
			user, err := a.API.Profile(ctx, token)
			if err != nil {
				return err
			}
			if err := a.Store.UpdateUser(ctx, *user); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
			if user.Phone != "" {
				fmt.Fprintf(a.Out, "phone: %s\n", user.Phone)
			}
			return nil
		},
	}

	var update api.ProfileUpdate
	set := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			token, err := a.requireRole(ctx, session.RoleUser)
			if err != nil {
				return err
			}
			if err := a.API.UpdateProfile(ctx, token, update); err != nil {
				return err
			}
			// keep the cached user in step with the remote profile
			user, err := a.API.Profile(ctx, token)
			if err != nil {
				return err
			}
			if err := a.Store.UpdateUser(ctx, *user); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, "profile updated")
			return nil
		},
	}
	set.Flags().StringVar(&update.FirstName, "first-name", "", "first name")
	set.Flags().StringVar(&update.LastName, "last-name", "", "last name")
	set.Flags().StringVar(&update.Phone, "phone", "", "phone number")
	_ = set.MarkFlagRequired("first-name")
	_ = set.MarkFlagRequired("last-name")

	cmd.AddCommand(show, set)
	return cmd
}
