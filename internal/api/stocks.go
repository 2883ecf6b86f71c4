package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fjod/go_shop/internal/domain"
)

// Admin-only inventory management endpoints under /v1/stocks. All take
// the admin role's access token.

type NewProduct struct {
	CategoryID    int64  `json:"categoryId"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	BasePrice     string `json:"basePrice"`
	StockQuantity int    `json:"stockQuantity"`
}

func (c *Client) AddProduct(ctx context.Context, token string, product NewProduct) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/v1/stocks/addProduct", token, product, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddProductPics attaches base64-encoded images to a product.
func (c *Client) AddProductPics(ctx context.Context, token string, productID int64, pics []string) error {
	body := map[string]any{"productId": productID, "pics": pics}
	return c.do(ctx, http.MethodPost, "/v1/stocks/addPics", token, body, nil)
}

func (c *Client) IncreaseStock(ctx context.Context, token string, productID int64, amount int) error {
	path := fmt.Sprintf("/v1/stocks/increaseStockById/%d", productID)
	body := map[string]int{"amount": amount}
	return c.do(ctx, http.MethodPatch, path, token, body, nil)
}

func (c *Client) DecreaseStock(ctx context.Context, token string, productID int64, amount int) error {
	path := fmt.Sprintf("/v1/stocks/decreaseStockById/%d", productID)
	body := map[string]int{"amount": amount}
	return c.do(ctx, http.MethodPatch, path, token, body, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token string, productID int64) error {
	path := fmt.Sprintf("/v1/stocks/deleteProductById/%d", productID)
	return c.do(ctx, http.MethodPatch, path, token, nil, nil)
}
