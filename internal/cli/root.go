// Package cli is the console surface over the storefront core. Commands
// stay thin: they parse flags, call into the packages that own the
// logic and print results.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/fjod/go_shop/internal/api"
	"github.com/fjod/go_shop/internal/config"
	"github.com/fjod/go_shop/internal/receipt"
	"github.com/fjod/go_shop/internal/session"
	"github.com/fjod/go_shop/internal/storage"
	"github.com/fjod/go_shop/internal/store"
)

// App is the per-invocation wiring: one store, one session manager and
// one API client, constructed once and passed down to every command.
type App struct {
	Config   config.Config
	API      *api.Client
	Storage  storage.Storage
	Store    *store.Store
	Sessions *session.Manager
	Handoff  *receipt.Handoff
	Out      io.Writer
}

func newApp(ctx context.Context, cfg config.Config, out io.Writer) (*App, error) {
	var st storage.Storage
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		st = storage.NewRedis(client, cfg.SessionID)
	} else {
		fileStore, err := storage.NewFile(cfg.SessionDir)
		if err != nil {
			return nil, err
		}
		st = fileStore
	}

	client := api.NewClient(api.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.RequestTimeout})

	shopStore := store.New(ctx, st)
	sessions := session.NewManager(st, client)
	// the state document carries its own copy of the user pair; keep it
	// in step with the session namespace across silent refreshes
	sessions.MirrorTokens(shopStore)

	return &App{
		Config:   cfg,
		API:      client,
		Storage:  st,
		Store:    shopStore,
		Sessions: sessions,
		Handoff:  receipt.NewHandoff(st),
		Out:      out,
	}, nil
}

// NewRootCmd builds the command tree. out receives all user-facing
// output so tests can capture it.
func NewRootCmd(out io.Writer) *cobra.Command {
	var (
		configPath string
		app        *App
	)

	root := &cobra.Command{
		Use:           "go_shop",
		Short:         "Storefront console for the commerce API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			app, err = newApp(cmd.Context(), cfg, out)
			return err
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	appRef := func() *App { return app }
	root.AddCommand(
		newLoginCmd(appRef),
		newRegisterCmd(appRef),
		newLogoutCmd(appRef),
		newAdminCmd(appRef),
		newProfileCmd(appRef),
		newProductsCmd(appRef),
		newCartCmd(appRef),
		newAddressCmd(appRef),
		newCheckoutCmd(appRef),
		newOrdersCmd(appRef),
		newStockCmd(appRef),
	)
	return root
}

// requireRole resolves a fresh token pair for the role or tells the
// user to log in, mirroring the redirect-to-login gate. Transport
// failures during the silent refresh pass through untranslated; only a
// genuinely missing or rejected session means "log in again".
func (a *App) requireRole(ctx context.Context, role session.Role) (string, error) {
	tokens, err := a.Sessions.EnsureFresh(ctx, role)
	if err != nil {
		if !errors.Is(err, session.ErrNotAuthenticated) {
			return "", err
		}
		if role == session.RoleAdmin {
			return "", fmt.Errorf("not logged in as admin, run 'go_shop admin login' first")
		}
		return "", fmt.Errorf("not logged in, run 'go_shop login' first")
	}
	return tokens.AccessToken, nil
}
