// Package checkout drives one checkout session: address selection and
// upkeep, payment collection, and submission to the order-placement
// boundary. All durable state stays in the store; the orchestrator only
// holds the transient form state of the session in progress.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fjod/go_shop/internal/api"
	"github.com/fjod/go_shop/internal/cart"
	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/payment"
	"github.com/fjod/go_shop/internal/receipt"
	"github.com/fjod/go_shop/internal/session"
	"github.com/fjod/go_shop/internal/store"
)

// NewAddressID is the sentinel for "use a new address": the selection
// starts here and the submitted addressId stays 0 when it was never
// resolved to a saved address.
const NewAddressID int64 = 0

// Common errors returned by the orchestrator
var (
	ErrEmptyCart          = errors.New("cannot check out an empty cart")
	ErrAddressLimit       = errors.New("address limit reached")
	ErrPaymentMethodLimit = errors.New("payment method limit reached")
	ErrUnknownAddress     = errors.New("address is not in the saved list")
	ErrNoPaymentSelected  = errors.New("no payment method selected")
	ErrSubmitInFlight     = errors.New("submission already in progress")
	ErrWrongStage         = errors.New("operation not allowed in this stage")
)

// Gateway is the slice of the API client the orchestrator calls.
type Gateway interface {
	Addresses(ctx context.Context, token string) ([]domain.Address, error)
	AddAddress(ctx context.Context, token string, address domain.Address) error
	UpdateAddress(ctx context.Context, token string, address domain.Address) error
	DeleteAddress(ctx context.Context, token string, addressID int64) error
	PaymentMethods(ctx context.Context, token string) ([]domain.StoredPaymentMethod, error)
	AddPaymentMethod(ctx context.Context, token string, req api.PaymentMethodRequest) error
	Checkout(ctx context.Context, token string, req api.CheckoutRequest) (*api.CheckoutResult, error)
}

// TokenSource gates the flow: no pair, no checkout.
type TokenSource interface {
	EnsureFresh(ctx context.Context, role session.Role) (domain.Tokens, error)
}

type Options struct {
	TaxRate            float64
	AddressLimit       int
	PaymentMethodLimit int
}

type Orchestrator struct {
	gateway  Gateway
	store    *store.Store
	sessions TokenSource
	handoff  *receipt.Handoff
	opts     Options
	validate *validator.Validate
	now      func() time.Time

	stage     Stage
	addresses []domain.Address
	selected  int64

	cash  bool
	draft *payment.Draft

	mu             sync.Mutex
	inFlight       bool
	idempotencyKey string
}

func New(gateway Gateway, st *store.Store, sessions TokenSource, handoff *receipt.Handoff, opts Options) *Orchestrator {
	if opts.AddressLimit == 0 {
		opts.AddressLimit = 3
	}
	if opts.PaymentMethodLimit == 0 {
		opts.PaymentMethodLimit = 3
	}
	return &Orchestrator{
		gateway:        gateway,
		store:          st,
		sessions:       sessions,
		handoff:        handoff,
		opts:           opts,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		now:            time.Now,
		stage:          StageSelectingAddress,
		selected:       NewAddressID,
		idempotencyKey: uuid.NewString(),
	}
}

func (o *Orchestrator) Stage() Stage { return o.stage }

func (o *Orchestrator) Addresses() []domain.Address {
	return append([]domain.Address(nil), o.addresses...)
}

func (o *Orchestrator) SelectedAddressID() int64 { return o.selected }

// Begin mounts the checkout: it requires an authenticated end-user
// session (the caller redirects to login on ErrNotAuthenticated) and
// loads the saved address list, defaulting the selection to the
// default address when one exists.
func (o *Orchestrator) Begin(ctx context.Context) error {
	tokens, err := o.sessions.EnsureFresh(ctx, session.RoleUser)
	if err != nil {
		return err
	}
	if o.store.User().UserID == 0 {
		return session.ErrNotAuthenticated
	}

	if err := o.reloadAddresses(ctx, tokens.AccessToken); err != nil {
		return err
	}
	o.stage = StageSelectingAddress
	return nil
}

func (o *Orchestrator) reloadAddresses(ctx context.Context, token string) error {
	addresses, err := o.gateway.Addresses(ctx, token)
	if err != nil {
		return fmt.Errorf("load addresses: %w", err)
	}
	o.addresses = addresses

	// keep the current selection when it survived the refetch,
	// otherwise fall back to the default address or the "new" sentinel
	if o.selected != NewAddressID && !o.hasAddress(o.selected) {
		o.selected = NewAddressID
	}
	if o.selected == NewAddressID {
		for _, a := range addresses {
			if a.IsDefault {
				o.selected = a.AddressID
				break
			}
		}
	}
	return nil
}

func (o *Orchestrator) hasAddress(id int64) bool {
	for _, a := range o.addresses {
		if a.AddressID == id {
			return true
		}
	}
	return false
}

// SelectAddress picks a saved address, or NewAddressID for a new one.
func (o *Orchestrator) SelectAddress(id int64) error {
	if o.stage != StageSelectingAddress {
		return fmt.Errorf("%w: %s", ErrWrongStage, o.stage)
	}
	if id != NewAddressID && !o.hasAddress(id) {
		return ErrUnknownAddress
	}
	o.selected = id
	return nil
}

// CreateAddress enforces the address ceiling locally, creates the
// address remotely and refetches the list; no speculative local insert
// survives past the refetch.
func (o *Orchestrator) CreateAddress(ctx context.Context, address domain.Address) error {
	if o.stage != StageSelectingAddress && o.stage != StageCreatingAddress {
		return fmt.Errorf("%w: %s", ErrWrongStage, o.stage)
	}
	if len(o.addresses) >= o.opts.AddressLimit {
		return ErrAddressLimit
	}
	if err := o.validate.Struct(address); err != nil {
		return fmt.Errorf("address form: %w", err)
	}

	o.stage = StageCreatingAddress
	tokens, err := o.sessions.EnsureFresh(ctx, session.RoleUser)
	if err != nil {
		return err
	}
	if err := o.gateway.AddAddress(ctx, tokens.AccessToken, address); err != nil {
		o.stage = StageSelectingAddress
		return err
	}
	if err := o.reloadAddresses(ctx, tokens.AccessToken); err != nil {
		return err
	}
	o.stage = StageSelectingAddress
	return nil
}

// EditAddress updates a saved address remotely and refetches.
func (o *Orchestrator) EditAddress(ctx context.Context, address domain.Address) error {
	if o.stage != StageSelectingAddress && o.stage != StageEditingAddress {
		return fmt.Errorf("%w: %s", ErrWrongStage, o.stage)
	}
	if !o.hasAddress(address.AddressID) {
		return ErrUnknownAddress
	}
	if err := o.validate.Struct(address); err != nil {
		return fmt.Errorf("address form: %w", err)
	}

	o.stage = StageEditingAddress
	tokens, err := o.sessions.EnsureFresh(ctx, session.RoleUser)
	if err != nil {
		return err
	}
	if err := o.gateway.UpdateAddress(ctx, tokens.AccessToken, address); err != nil {
		o.stage = StageSelectingAddress
		return err
	}
	if err := o.reloadAddresses(ctx, tokens.AccessToken); err != nil {
		return err
	}
	o.stage = StageSelectingAddress
	return nil
}

// RemoveAddress deletes a saved address; a selection pointing at it
// falls back to the "new" sentinel after the refetch.
func (o *Orchestrator) RemoveAddress(ctx context.Context, id int64) error {
	if o.stage != StageSelectingAddress {
		return fmt.Errorf("%w: %s", ErrWrongStage, o.stage)
	}
	tokens, err := o.sessions.EnsureFresh(ctx, session.RoleUser)
	if err != nil {
		return err
	}
	if err := o.gateway.DeleteAddress(ctx, tokens.AccessToken, id); err != nil {
		return err
	}
	return o.reloadAddresses(ctx, tokens.AccessToken)
}

// ProceedToPayment leaves address selection.
func (o *Orchestrator) ProceedToPayment() error {
	if o.stage != StageSelectingAddress {
		return fmt.Errorf("%w: %s", ErrWrongStage, o.stage)
	}
	o.stage = StageSelectingPayment
	return nil
}

// UseCash selects cash on delivery.
func (o *Orchestrator) UseCash() error {
	if o.stage != StageSelectingPayment {
		return fmt.Errorf("%w: %s", ErrWrongStage, o.stage)
	}
	o.cash = true
	o.draft = nil
	return nil
}

// UseCard selects card payment. The draft must pass format validation
// before the submit control arms; an invalid draft leaves the previous
// selection in place.
func (o *Orchestrator) UseCard(draft payment.Draft) error {
	if o.stage != StageSelectingPayment {
		return fmt.Errorf("%w: %s", ErrWrongStage, o.stage)
	}
	if err := draft.Validate(o.now()); err != nil {
		return err
	}
	o.cash = false
	o.draft = &draft
	return nil
}

// SavePaymentMethod stores a validated card on the profile, capped at
// the configured limit. The first stored method is forced to default
// regardless of the form input.
func (o *Orchestrator) SavePaymentMethod(ctx context.Context, draft payment.Draft, isDefault bool) error {
	if err := draft.Validate(o.now()); err != nil {
		return err
	}
	tokens, err := o.sessions.EnsureFresh(ctx, session.RoleUser)
	if err != nil {
		return err
	}

	existing, err := o.gateway.PaymentMethods(ctx, tokens.AccessToken)
	if err != nil {
		return err
	}
	if len(existing) >= o.opts.PaymentMethodLimit {
		return ErrPaymentMethodLimit
	}
	if len(existing) == 0 {
		isDefault = true
	}

	summary := draft.Summary()
	return o.gateway.AddPaymentMethod(ctx, tokens.AccessToken, api.PaymentMethodRequest{
		CardType:   summary.CardType,
		LastFour:   summary.LastFour,
		HolderName: summary.HolderName,
		ExpiryDate: summary.ExpiryDate,
		IsDefault:  isDefault,
	})
}

// Submit places the order. It snapshots the cart, assembles the
// checkout request and calls the boundary exactly once at a time; a
// second Submit while one is in flight is rejected. On success the
// cart is replaced with the empty collection and the receipt handoff
// is written; on failure cart and form state are left untouched so the
// user may retry.
func (o *Orchestrator) Submit(ctx context.Context) (*domain.OrderReceipt, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	o.inFlight = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	if o.stage != StageSelectingPayment && o.stage != StageFailed {
		return nil, fmt.Errorf("%w: %s", ErrWrongStage, o.stage)
	}
	if !o.cash && o.draft == nil {
		return nil, ErrNoPaymentSelected
	}

	snapshot := o.store.Cart()
	if len(snapshot) == 0 {
		return nil, ErrEmptyCart
	}

	tokens, err := o.sessions.EnsureFresh(ctx, session.RoleUser)
	if err != nil {
		return nil, err
	}
	user := o.store.User()

	selection := api.CashPayment()
	if o.draft != nil {
		selection = api.CardPayment(o.draft.Summary())
	}

	o.stage = StageSubmitting
	result, err := o.gateway.Checkout(ctx, tokens.AccessToken, api.CheckoutRequest{
		Products:       snapshot,
		PaymentMethod:  selection,
		AddressID:      o.selected,
		UserID:         user.UserID,
		Email:          user.Email,
		IdempotencyKey: o.idempotencyKey,
	})
	if err != nil {
		o.stage = StageFailed
		return nil, err
	}

	totals, err := cart.Derive(snapshot, o.opts.TaxRate)
	if err != nil {
		// the order is placed either way; surface the broken totals
		// instead of hiding them behind a clean-looking receipt
		log.Printf("order %d placed but receipt totals could not be derived: %v", result.OrderID, err)
		totals = cart.Totals{}
	}

	placedAt := result.CreatedAt
	if placedAt.IsZero() {
		placedAt = o.now()
	}
	rcpt := domain.OrderReceipt{
		OrderID:  result.OrderID,
		PlacedAt: placedAt,
		Items:    snapshot,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}

	if err := o.store.UpdateCart(ctx, nil); err != nil {
		return nil, err
	}
	if err := o.handoff.Put(ctx, rcpt); err != nil {
		return nil, err
	}
	o.stage = StageSucceeded
	return &rcpt, nil
}
