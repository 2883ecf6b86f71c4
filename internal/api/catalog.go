package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fjod/go_shop/internal/domain"
)

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.do(ctx, http.MethodGet, "/v1/category/list", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/v1/products/list", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProductByID(ctx context.Context, productID int64) (*domain.Product, error) {
	var out domain.Product
	path := fmt.Sprintf("/v1/products/%d", productID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchProducts(ctx context.Context, query, category string) ([]domain.Product, error) {
	var out []domain.Product
	path := fmt.Sprintf("/v1/products/search?query=%s&category=%s",
		url.QueryEscape(query), url.QueryEscape(category))
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
