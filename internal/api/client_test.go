package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_shop/internal/domain"
)

func respondData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"message": "ok", "data": data})
}

// fakeAPI is a chi-routed stand-in for the remote commerce API.
func fakeAPI(t *testing.T) (*chi.Mux, *Client) {
	t.Helper()
	r := chi.NewRouter()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return r, NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func TestLogin_UnwrapsEnvelope(t *testing.T) {
	r, sut := fakeAPI(t)
	r.Post("/v1/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var creds Credentials
		require.NoError(t, json.NewDecoder(req.Body).Decode(&creds))
		assert.Equal(t, "a@b.c", creds.Email)
		respondData(w, http.StatusOK, LoginResult{
			User:   domain.User{UserID: 7, Email: creds.Email},
			Tokens: domain.Tokens{AccessToken: "acc", RefreshToken: "ref"},
		})
	})

	res, err := sut.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.User.UserID)
	assert.True(t, res.Tokens.Present())
}

func TestAddresses_SendsBearerToken(t *testing.T) {
	r, sut := fakeAPI(t)
	r.Get("/v1/profile/addresses", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer my-token", req.Header.Get("Authorization"))
		respondData(w, http.StatusOK, []domain.Address{{AddressID: 1, City: "Anytown"}})
	})

	addrs, err := sut.Addresses(context.Background(), "my-token")
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.Equal(t, "Anytown", addrs[0].City)
}

func TestDo_ValidationErrorEnvelope(t *testing.T) {
	r, sut := fakeAPI(t)
	r.Post("/v1/auth/login", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"issues":[{"message":"email is required"}]}}`))
	})

	_, err := sut.Login(context.Background(), Credentials{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "email is required", apiErr.Message)
}

func TestDo_GatewayErrorEnvelope(t *testing.T) {
	r, sut := fakeAPI(t)
	r.Get("/v1/products/list", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"service unavailable","code":"service_unavailable"}`))
	})

	_, err := sut.Products(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "service unavailable", apiErr.Message)
	assert.Equal(t, "service_unavailable", apiErr.Code)
}

func TestDo_Unauthorized(t *testing.T) {
	r, sut := fakeAPI(t)
	r.Get("/v1/profile", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	})

	_, err := sut.Profile(context.Background(), "stale")
	require.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "token expired")
}

func TestDo_NoDataInEnvelope(t *testing.T) {
	r, sut := fakeAPI(t)
	r.Get("/v1/category/list", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	_, err := sut.Categories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data")
}

func TestBreaker_OpensAfterConsecutiveTransportFailures(t *testing.T) {
	// a server that is already gone produces transport errors
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	sut := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})

	for i := 0; i < 5; i++ {
		_, err := sut.Products(context.Background())
		require.Error(t, err)
	}

	_, err := sut.Products(context.Background())
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestPaymentSelection_WireForm(t *testing.T) {
	cash, err := json.Marshal(CashPayment())
	require.NoError(t, err)
	assert.Equal(t, "0", string(cash))

	card, err := json.Marshal(CardPayment(domain.CardSummary{
		CardType: "Visa", LastFour: "1111", HolderName: "John Doe", ExpiryDate: "12/28",
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"cardType":"Visa","lastFour":"1111","holderName":"John Doe","expiryDate":"12/28"}`, string(card))

	var round PaymentSelection
	require.NoError(t, json.Unmarshal([]byte("0"), &round))
	assert.Nil(t, round.Card)
	require.NoError(t, json.Unmarshal(card, &round))
	require.NotNil(t, round.Card)
	assert.Equal(t, "1111", round.Card.LastFour)
}

func TestCheckout_RequestShape(t *testing.T) {
	r, sut := fakeAPI(t)
	var got map[string]any
	r.Post("/v1/cart/checkout", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		respondData(w, http.StatusCreated, CheckoutResult{OrderID: 42})
	})

	res, err := sut.Checkout(context.Background(), "tok", CheckoutRequest{
		Products:      []domain.CartItem{{ProductID: 1, Quantity: 2, BasePrice: "10.00"}},
		PaymentMethod: CashPayment(),
		AddressID:     3,
		UserID:        7,
		Email:         "a@b.c",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.OrderID)

	assert.Equal(t, float64(0), got["paymentMethod"])
	assert.Equal(t, float64(3), got["addressId"])
	assert.Equal(t, "a@b.c", got["email"])
}
