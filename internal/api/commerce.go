package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fjod/go_shop/internal/domain"
)

// PaymentSelection is the checkout payment field: the literal 0 for
// cash on delivery, or a structured card summary.
type PaymentSelection struct {
	Card *domain.CardSummary
}

func CashPayment() PaymentSelection {
	return PaymentSelection{}
}

func CardPayment(summary domain.CardSummary) PaymentSelection {
	return PaymentSelection{Card: &summary}
}

func (p PaymentSelection) MarshalJSON() ([]byte, error) {
	if p.Card == nil {
		return []byte("0"), nil
	}
	return json.Marshal(p.Card)
}

func (p *PaymentSelection) UnmarshalJSON(data []byte) error {
	if string(data) == "0" {
		p.Card = nil
		return nil
	}
	var card domain.CardSummary
	if err := json.Unmarshal(data, &card); err != nil {
		return err
	}
	p.Card = &card
	return nil
}

// CheckoutRequest is the order placement payload. AddressID is 0 when
// the "new" sentinel was never resolved to a saved address.
type CheckoutRequest struct {
	Products       []domain.CartItem `json:"products"`
	PaymentMethod  PaymentSelection  `json:"paymentMethod"`
	AddressID      int64             `json:"addressId"`
	UserID         int64             `json:"userId"`
	Email          string            `json:"email"`
	IdempotencyKey string            `json:"idempotencyKey,omitempty"`
}

type CheckoutResult struct {
	OrderID   int64     `json:"orderId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *Client) Checkout(ctx context.Context, token string, req CheckoutRequest) (*CheckoutResult, error) {
	var out CheckoutResult
	if err := c.do(ctx, http.MethodPost, "/v1/cart/checkout", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Orders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/v1/stocks/orders/list", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int64, status string) error {
	path := fmt.Sprintf("/v1/stocks/orders/%d/status", orderID)
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, path, token, body, nil)
}
