package payment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fjod/go_shop/internal/domain"
)

// Common errors returned by draft validation
var (
	ErrCardNumberLength = errors.New("card number must be exactly 16 digits")
	ErrCardNumberDigits = errors.New("card number must contain digits only")
	ErrExpiryFormat     = errors.New("expiry must be a valid MM/YY date")
	ErrExpiryTooFar     = errors.New("expiry year is too far in the future")
	ErrCardExpired      = errors.New("card is expired")
)

// ExpiryYearWindow bounds how far ahead an expiry year may lie.
const ExpiryYearWindow = 20

// Card types derived from the leading digit of the PAN.
const (
	CardTypeVisa       = "Visa"
	CardTypeMasterCard = "MasterCard"
	CardTypeUnionPay   = "UnionPay"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Draft is a transient payment form. It is never written to the state
// store; the PAN is only used locally to derive the card type and the
// last four digits for the checkout request.
type Draft struct {
	HolderName  string `validate:"required"`
	CardNumber  string `validate:"required"`
	ExpiryMonth string `validate:"required,len=2,number"`
	ExpiryYear  string `validate:"required,len=2,number"`
	CVV         string `validate:"required,number,min=3,max=4"`
}

// normalizePAN strips the spaces and dashes a user typically types into
// a card number field.
func normalizePAN(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// CardTypeOf derives the card network from the leading digit:
// 4 is Visa, 5 is MasterCard, anything else falls back to UnionPay.
func CardTypeOf(cardNumber string) string {
	pan := normalizePAN(cardNumber)
	switch {
	case strings.HasPrefix(pan, "4"):
		return CardTypeVisa
	case strings.HasPrefix(pan, "5"):
		return CardTypeMasterCard
	default:
		return CardTypeUnionPay
	}
}

// Validate checks the draft against the submission rules: all fields
// present, PAN exactly 16 digits, expiry a real MM/YY date that is not
// in the past and whose year lies within the allowed window of now.
func (d Draft) Validate(now time.Time) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("payment form: %w", err)
	}

	pan := normalizePAN(d.CardNumber)
	if len(pan) != 16 {
		return ErrCardNumberLength
	}
	for _, r := range pan {
		if r < '0' || r > '9' {
			return ErrCardNumberDigits
		}
	}

	month, err := strconv.Atoi(d.ExpiryMonth)
	if err != nil || month < 1 || month > 12 {
		return ErrExpiryFormat
	}
	year, err := strconv.Atoi(d.ExpiryYear)
	if err != nil {
		return ErrExpiryFormat
	}
	fullYear := 2000 + year

	switch {
	case fullYear < now.Year():
		return ErrCardExpired
	case fullYear >= now.Year()+ExpiryYearWindow:
		return ErrExpiryTooFar
	case fullYear == now.Year() && month < int(now.Month()):
		return ErrCardExpired
	}
	return nil
}

// LastFour returns the display value derived from the PAN.
func (d Draft) LastFour() string {
	pan := normalizePAN(d.CardNumber)
	if len(pan) < 4 {
		return pan
	}
	return pan[len(pan)-4:]
}

// Summary produces the structured card summary carried by the checkout
// request. The caller must have run Validate first.
func (d Draft) Summary() domain.CardSummary {
	return domain.CardSummary{
		CardType:   CardTypeOf(d.CardNumber),
		LastFour:   d.LastFour(),
		HolderName: d.HolderName,
		ExpiryDate: d.ExpiryMonth + "/" + d.ExpiryYear,
	}
}
