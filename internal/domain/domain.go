package domain

import "time"

// Category as served by GET /v1/category/list.
type Category struct {
	CategoryID       int64  `json:"categoryId"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ParentCategoryID *int64 `json:"parentCategoryId"`
	IsActive         bool   `json:"isActive"`
}

// Product as served by the catalog endpoints. BasePrice stays a decimal
// string on the wire; arithmetic parses it at the point of use.
type Product struct {
	ProductID     int64          `json:"productId"`
	CategoryID    int64          `json:"categoryId"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	BasePrice     string         `json:"basePrice"`
	StockQuantity int            `json:"stockQuantity"`
	IsActive      bool           `json:"isActive"`
	Images        []ProductImage `json:"images,omitempty"`
}

type ProductImage struct {
	ImageID      int64  `json:"imageId"`
	ProductID    int64  `json:"productId"`
	URL          string `json:"url"`
	AltText      string `json:"altText,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
	IsPrimary    bool   `json:"isPrimary"`
}

// CartItem is one line item in the cart. StockQuantity is the stock
// ceiling known at the time the product was last fetched; Quantity must
// stay strictly below it.
type CartItem struct {
	ProductID     int64          `json:"productId"`
	Name          string         `json:"name"`
	BasePrice     string         `json:"basePrice"`
	Images        []ProductImage `json:"images,omitempty"`
	StockQuantity int            `json:"stockQuantity"`
	Quantity      int            `json:"quantity"`
}

type User struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// Tokens is an access/refresh pair for one role namespace.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Present reports whether both halves of the pair are set. Token-gated
// surfaces require the full pair before mounting.
func (t Tokens) Present() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}

type Address struct {
	AddressID     int64  `json:"addressId"`
	StreetAddress string `json:"streetAddress" validate:"required"`
	City          string `json:"city" validate:"required"`
	State         string `json:"state" validate:"required"`
	PostalCode    string `json:"postalCode" validate:"required"`
	Country       string `json:"country" validate:"required"`
	IsDefault     bool   `json:"isDefault"`
}

// CardSummary is what the checkout request carries for card payments.
// The full PAN never appears here.
type CardSummary struct {
	CardType   string `json:"cardType"`
	LastFour   string `json:"lastFour"`
	HolderName string `json:"holderName"`
	ExpiryDate string `json:"expiryDate"`
}

// StoredPaymentMethod is a card summary kept on the profile.
type StoredPaymentMethod struct {
	PaymentMethodID int64  `json:"paymentMethodId"`
	CardType        string `json:"cardType"`
	LastFour        string `json:"lastFour"`
	HolderName      string `json:"holderName"`
	ExpiryDate      string `json:"expiryDate"`
	IsDefault       bool   `json:"isDefault"`
}

// Order as listed by GET /v1/stocks/orders/list.
type Order struct {
	OrderID         int64      `json:"orderId"`
	UserID          int64      `json:"userId"`
	AddressID       int64      `json:"addressId"`
	PaymentMethodID int64      `json:"paymentMethodId"`
	Status          string     `json:"status"`
	Items           []CartItem `json:"items"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// OrderReceipt is the one-shot handoff written after a successful
// checkout and consumed exactly once by the confirmation surface.
type OrderReceipt struct {
	OrderID  int64      `json:"orderId"`
	PlacedAt time.Time  `json:"placedAt"`
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Tax      float64    `json:"tax"`
	Total    float64    `json:"total"`
}
