package cart

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fjod/go_shop/internal/domain"
)

// Common errors returned by cart operations
var (
	ErrOutOfStock          = errors.New("requested quantity is not available")
	ErrQuantityNotPositive = errors.New("quantity must be positive")
	ErrItemNotFound        = errors.New("item not in cart")
)

// Totals holds the derived pricing for a cart. Values are raw float64;
// callers render them to 2 decimals with FormatAmount.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// Add merges a product into the cart. If the product is already present
// the requested quantity is added to the existing line item, otherwise a
// new line item is appended. The whole operation is rejected with
// ErrOutOfStock when the proposed quantity would reach the product's
// known stock ceiling; the input cart is never mutated.
func Add(cart []domain.CartItem, product domain.Product, qty int) ([]domain.CartItem, error) {
	if qty <= 0 {
		return nil, ErrQuantityNotPositive
	}

	proposed := qty
	for _, item := range cart {
		if item.ProductID == product.ProductID {
			proposed += item.Quantity
			break
		}
	}
	if proposed >= product.StockQuantity {
		return nil, ErrOutOfStock
	}

	next := make([]domain.CartItem, 0, len(cart)+1)
	merged := false
	for _, item := range cart {
		if item.ProductID == product.ProductID {
			item.Quantity = proposed
			item.StockQuantity = product.StockQuantity
			merged = true
		}
		next = append(next, item)
	}
	if !merged {
		next = append(next, domain.CartItem{
			ProductID:     product.ProductID,
			Name:          product.Name,
			BasePrice:     product.BasePrice,
			Images:        product.Images,
			StockQuantity: product.StockQuantity,
			Quantity:      qty,
		})
	}
	return next, nil
}

// SetQuantity replaces one line item's quantity. A non-positive quantity
// is rejected with ErrQuantityNotPositive; removal goes through Remove
// only. A quantity at or above the line item's stock ceiling is rejected
// with ErrOutOfStock and the cart is left unchanged.
func SetQuantity(cart []domain.CartItem, productID int64, qty int) ([]domain.CartItem, error) {
	if qty <= 0 {
		return nil, ErrQuantityNotPositive
	}

	found := false
	for _, item := range cart {
		if item.ProductID == productID {
			found = true
			if qty >= item.StockQuantity {
				return nil, ErrOutOfStock
			}
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}

	next := make([]domain.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ProductID == productID {
			item.Quantity = qty
		}
		next = append(next, item)
	}
	return next, nil
}

// Remove filters the product out of the cart. Removing an absent product
// is not an error.
func Remove(cart []domain.CartItem, productID int64) []domain.CartItem {
	next := make([]domain.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}
	return next
}

// Count returns the total number of units across all line items.
func Count(cart []domain.CartItem) int {
	sum := 0
	for _, item := range cart {
		sum += item.Quantity
	}
	return sum
}

// Derive computes subtotal, tax and total for the cart at the given tax
// rate. Unit prices arrive as decimal strings from the remote API and
// are parsed to float64; cent-level drift is an accepted limitation.
func Derive(cart []domain.CartItem, taxRate float64) (Totals, error) {
	var subtotal float64
	for _, item := range cart {
		price, err := strconv.ParseFloat(item.BasePrice, 64)
		if err != nil {
			return Totals{}, fmt.Errorf("parse price for product %d: %w", item.ProductID, err)
		}
		subtotal += price * float64(item.Quantity)
	}

	tax := subtotal * taxRate
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}, nil
}

// FormatAmount renders a monetary value to two decimal places.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
