package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjod/go_shop/internal/api"
	"github.com/fjod/go_shop/internal/session"
)

func newLoginCmd(app func() *App) *cobra.Command {
	var creds api.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as an end user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			ctx := cmd.Context()

			res, err := a.API.Login(ctx, creds)
			if err != nil {
				return err
			}
			// Establish mirrors the pair into the state document
			if err := a.Sessions.Establish(ctx, session.RoleUser, res.Tokens); err != nil {
				return err
			}
			if err := a.Store.UpdateUser(ctx, res.User); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "logged in as %s\n", res.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(app func() *App) *cobra.Command {
	var req api.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an end-user account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			ctx := cmd.Context()

			res, err := a.API.Register(ctx, req)
			if err != nil {
				return err
			}
			if err := a.Sessions.Establish(ctx, session.RoleUser, res.Tokens); err != nil {
				return err
			}
			if err := a.Store.UpdateUser(ctx, res.User); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "registered %s\n", res.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			ctx := cmd.Context()

			if err := a.Sessions.Clear(ctx, session.RoleUser); err != nil {
				return err
			}
			if err := a.Sessions.Clear(ctx, session.RoleAdmin); err != nil {
				return err
			}
			if err := a.Store.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, "logged out")
			return nil
		},
	}
}

func newAdminCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin authentication",
	}

	var creds api.Credentials
	login := &cobra.Command{
		Use:   "login",
		Short: "Log in as an admin",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			res, err := a.API.AdminLogin(ctx, creds)
			if err != nil {
				return err
			}
			// establishing the admin session clears end-user tokens
			if err := a.Sessions.Establish(ctx, session.RoleAdmin, res.Tokens); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "logged in as admin %s\n", res.Admin.Email)
			return nil
		},
	}
	login.Flags().StringVar(&creds.Email, "email", "", "admin email")
	login.Flags().StringVar(&creds.Password, "password", "", "admin password")
	_ = login.MarkFlagRequired("email")
	_ = login.MarkFlagRequired("password")

	var regCreds api.Credentials
	register := &cobra.Command{
		Use:   "register",
		Short: "Create an admin account",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			res, err := a.API.AdminRegister(ctx, regCreds)
			if err != nil {
				return err
			}
			if err := a.Sessions.Establish(ctx, session.RoleAdmin, res.Tokens); err != nil {
				return err
			}
			fmt.Fprintf(a.Out, "registered admin %s\n", res.Admin.Email)
			return nil
		},
	}
	register.Flags().StringVar(&regCreds.Email, "email", "", "admin email")
	register.Flags().StringVar(&regCreds.Password, "password", "", "admin password")
	_ = register.MarkFlagRequired("email")
	_ = register.MarkFlagRequired("password")

	cmd.AddCommand(login, register)
	return cmd
}
