package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fjod/go_shop/internal/cart"
	"github.com/fjod/go_shop/internal/checkout"
	"github.com/fjod/go_shop/internal/payment"
	"github.com/fjod/go_shop/internal/receipt"
	"github.com/fjod/go_shop/internal/session"
)

// newCheckoutCmd drives one full checkout session per invocation:
// address selection, payment collection and a single submit.
func newCheckoutCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order from the cart",
	}

	var (
		addressID int64
		cash      bool
		card      payment.Draft
	)
	place := &cobra.Command{
		Use:   "place",
		Short: "Run the checkout flow and submit the order",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			orch := checkout.New(a.API, a.Store, a.Sessions, a.Handoff, checkout.Options{
				TaxRate:            a.Config.TaxRate,
				AddressLimit:       a.Config.AddressLimit,
				PaymentMethodLimit: a.Config.PaymentMethodLimit,
			})
			if err := orch.Begin(ctx); err != nil {
				if errors.Is(err, session.ErrNotAuthenticated) {
					return fmt.Errorf("not logged in, run 'go_shop login' first")
				}
				return err
			}

			if c.Flags().Changed("address-id") {
				if err := orch.SelectAddress(addressID); err != nil {
					return err
				}
			} else if orch.SelectedAddressID() == checkout.NewAddressID {
				return fmt.Errorf("no default address on file, pass --address-id or save one with 'go_shop address add'")
			}
			if err := orch.ProceedToPayment(); err != nil {
				return err
			}

			switch {
			case cash:
				if err := orch.UseCash(); err != nil {
					return err
				}
			case card.CardNumber != "":
				if err := orch.UseCard(card); err != nil {
					return err
				}
			default:
				return checkout.ErrNoPaymentSelected
			}

			rcpt, err := orch.Submit(ctx)
			if err != nil {
				if errors.Is(err, checkout.ErrEmptyCart) {
					return fmt.Errorf("your cart is empty")
				}
				return err
			}

			fmt.Fprintf(a.Out, "order %d placed at %s\n", rcpt.OrderID, rcpt.PlacedAt.Format("2006-01-02 15:04"))
			fmt.Fprintf(a.Out, "run 'go_shop checkout confirm' for the receipt\n")
			return nil
		},
	}
	place.Flags().Int64Var(&addressID, "address-id", checkout.NewAddressID, "saved address to ship to (defaults to the default address)")
	place.Flags().BoolVar(&cash, "cash", false, "pay cash on delivery")
	place.Flags().StringVar(&card.HolderName, "card-holder", "", "card holder name")
	place.Flags().StringVar(&card.CardNumber, "card-number", "", "card number")
	place.Flags().StringVar(&card.ExpiryMonth, "card-month", "", "card expiry month (MM)")
	place.Flags().StringVar(&card.ExpiryYear, "card-year", "", "card expiry year (YY)")
	place.Flags().StringVar(&card.CVV, "card-cvv", "", "card CVV")

	confirm := &cobra.Command{
		Use:   "confirm",
		Short: "Show the receipt of the order just placed",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()

			rcpt, err := a.Handoff.Take(c.Context())
			if errors.Is(err, receipt.ErrNoReceipt) {
				return fmt.Errorf("no order receipt pending")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(a.Out, "order %d placed %s\n", rcpt.OrderID, rcpt.PlacedAt.Format("2006-01-02 15:04"))
			for _, item := range rcpt.Items {
				fmt.Fprintf(a.Out, "  %s x%d @ $%s\n", item.Name, item.Quantity, item.BasePrice)
			}
			fmt.Fprintf(a.Out, "subtotal: $%s\ntax: $%s\ntotal: $%s\n",
				cart.FormatAmount(rcpt.Subtotal),
				cart.FormatAmount(rcpt.Tax),
				cart.FormatAmount(rcpt.Total))
			return nil
		},
	}

	var (
		saveCard    payment.Draft
		saveDefault bool
	)
	saveMethod := &cobra.Command{
		Use:   "save-card",
		Short: "Store a card on the profile for later checkouts",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			orch := checkout.New(a.API, a.Store, a.Sessions, a.Handoff, checkout.Options{
				TaxRate:            a.Config.TaxRate,
				AddressLimit:       a.Config.AddressLimit,
				PaymentMethodLimit: a.Config.PaymentMethodLimit,
			})
			if err := orch.SavePaymentMethod(ctx, saveCard, saveDefault); err != nil {
				if errors.Is(err, checkout.ErrPaymentMethodLimit) {
					return fmt.Errorf("payment method limit of %d reached", a.Config.PaymentMethodLimit)
				}
				return err
			}
			fmt.Fprintf(a.Out, "card ending %s saved\n", saveCard.LastFour())
			return nil
		},
	}
	saveMethod.Flags().StringVar(&saveCard.HolderName, "holder", "", "card holder name")
	saveMethod.Flags().StringVar(&saveCard.CardNumber, "number", "", "card number")
	saveMethod.Flags().StringVar(&saveCard.ExpiryMonth, "month", "", "expiry month (MM)")
	saveMethod.Flags().StringVar(&saveCard.ExpiryYear, "year", "", "expiry year (YY)")
	saveMethod.Flags().StringVar(&saveCard.CVV, "cvv", "", "card CVV")
	saveMethod.Flags().BoolVar(&saveDefault, "default", false, "mark as default")
	_ = saveMethod.MarkFlagRequired("holder")
	_ = saveMethod.MarkFlagRequired("number")
	_ = saveMethod.MarkFlagRequired("month")
	_ = saveMethod.MarkFlagRequired("year")
	_ = saveMethod.MarkFlagRequired("cvv")

	cards := &cobra.Command{
		Use:   "cards",
		Short: "List cards stored on the profile",
		RunE: func(c *cobra.Command, _ []string) error {
			a := app()
			ctx := c.Context()

			token, err := a.requireRole(ctx, session.RoleUser)
			if err != nil {
				return err
			}
			methods, err := a.API.PaymentMethods(ctx, token)
			if err != nil {
				return err
			}
			if len(methods) == 0 {
				fmt.Fprintln(a.Out, "no stored cards")
				return nil
			}
			for _, m := range methods {
				marker := " "
				if m.IsDefault {
					marker = "*"
				}
				fmt.Fprintf(a.Out, "%s %d\t%s ****%s\t%s\texp %s\n",
					marker, m.PaymentMethodID, m.CardType, m.LastFour, m.HolderName, m.ExpiryDate)
			}
			return nil
		},
	}

	deleteCard := &cobra.Command{
		Use:   "delete-card <payment-method-id>",
		Short: "Remove a stored card",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			a := app()
			ctx := c.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("payment method id must be a number: %q", args[0])
			}
			token, err := a.requireRole(ctx, session.RoleUser)
			if err != nil {
				return err
			}
			if err := a.API.DeletePaymentMethod(ctx, token, id); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, "card removed")
			return nil
		},
	}

	cmd.AddCommand(place, confirm, saveMethod, cards, deleteCard)
	return cmd
}
