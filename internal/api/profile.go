package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fjod/go_shop/internal/domain"
)

func (c *Client) Profile(ctx context.Context, token string) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, "/v1/profile", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/v1/profile", token, update, nil)
}

func (c *Client) Addresses(ctx context.Context, token string) ([]domain.Address, error) {
	var out []domain.Address
	if err := c.do(ctx, http.MethodGet, "/v1/profile/addresses", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// addressBody is the address create/update payload; the id travels in
// the path, never the body.
type addressBody struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	IsDefault     bool   `json:"isDefault"`
}

func toAddressBody(a domain.Address) addressBody {
	return addressBody{
		StreetAddress: a.StreetAddress,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		IsDefault:     a.IsDefault,
	}
}

func (c *Client) AddAddress(ctx context.Context, token string, address domain.Address) error {
	return c.do(ctx, http.MethodPost, "/v1/profile/addresses", token, toAddressBody(address), nil)
}

func (c *Client) UpdateAddress(ctx context.Context, token string, address domain.Address) error {
	path := fmt.Sprintf("/v1/profile/addresses/%d", address.AddressID)
	return c.do(ctx, http.MethodPut, path, token, toAddressBody(address), nil)
}

func (c *Client) DeleteAddress(ctx context.Context, token string, addressID int64) error {
	path := fmt.Sprintf("/v1/profile/addresses/%d", addressID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

func (c *Client) PaymentMethods(ctx context.Context, token string) ([]domain.StoredPaymentMethod, error) {
	var out []domain.StoredPaymentMethod
	if err := c.do(ctx, http.MethodGet, "/v1/profile/payment-methods", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type PaymentMethodRequest struct {
	CardType   string `json:"cardType"`
	LastFour   string `json:"lastFour"`
	HolderName string `json:"holderName"`
	ExpiryDate string `json:"expiryDate"`
	IsDefault  bool   `json:"isDefault"`
}

func (c *Client) AddPaymentMethod(ctx context.Context, token string, req PaymentMethodRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/profile/payment-methods", token, req, nil)
}

func (c *Client) DeletePaymentMethod(ctx context.Context, token string, paymentMethodID int64) error {
	path := fmt.Sprintf("/v1/profile/payment-methods/%d", paymentMethodID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}
