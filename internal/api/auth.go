package api

import (
	"context"
	"net/http"

	"github.com/fjod/go_shop/internal/domain"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginResult is the data payload of the end-user auth endpoints.
type LoginResult struct {
	User   domain.User   `json:"user"`
	Tokens domain.Tokens `json:"tokens"`
}

// AdminLoginResult is the data payload of the admin auth endpoints.
type AdminLoginResult struct {
	Admin  Admin         `json:"admin"`
	Tokens domain.Tokens `json:"tokens"`
}

type Admin struct {
	AdminID int64  `json:"adminId"`
	Email   string `json:"email"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh trades a refresh token for a fresh pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (domain.Tokens, error) {
	var out domain.Tokens
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/v1/auth/refresh", "", body, &out); err != nil {
		return domain.Tokens{}, err
	}
	return out, nil
}

func (c *Client) AdminLogin(ctx context.Context, creds Credentials) (*AdminLoginResult, error) {
	var out AdminLoginResult
	if err := c.do(ctx, http.MethodPost, "/v1/admin-auth/login", "", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminRegister(ctx context.Context, creds Credentials) (*AdminLoginResult, error) {
	var out AdminLoginResult
	if err := c.do(ctx, http.MethodPost, "/v1/admin-auth/register", "", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminRefresh(ctx context.Context, refreshToken string) (domain.Tokens, error) {
	var out domain.Tokens
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.do(ctx, http.MethodPost, "/v1/admin-auth/refresh", "", body, &out); err != nil {
		return domain.Tokens{}, err
	}
	return out, nil
}
