package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		HolderName:  "John Doe",
		CardNumber:  "4111 1111 1111 1111",
		ExpiryMonth: "12",
		ExpiryYear:  "28",
		CVV:         "123",
	}
}

var now = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestCardTypeOf(t *testing.T) {
	assert.Equal(t, CardTypeVisa, CardTypeOf("4111111111111111"))
	assert.Equal(t, CardTypeMasterCard, CardTypeOf("5500000000000004"))
	assert.Equal(t, CardTypeUnionPay, CardTypeOf("6200000000000005"))
	assert.Equal(t, CardTypeUnionPay, CardTypeOf("1234"))
}

func TestValidate_Success(t *testing.T) {
	require.NoError(t, validDraft().Validate(now))
}

func TestValidate_DashesAndSpacesStripped(t *testing.T) {
	d := validDraft()
	d.CardNumber = "4111-1111-1111-1111"
	require.NoError(t, d.Validate(now))
}

func TestValidate_CardNumberLength(t *testing.T) {
	d := validDraft()
	d.CardNumber = "411111111111111" // 15 digits
	require.ErrorIs(t, d.Validate(now), ErrCardNumberLength)

	d.CardNumber = "41111111111111112222"
	require.ErrorIs(t, d.Validate(now), ErrCardNumberLength)
}

func TestValidate_CardNumberDigitsOnly(t *testing.T) {
	d := validDraft()
	d.CardNumber = "4111x11111111111"
	require.ErrorIs(t, d.Validate(now), ErrCardNumberDigits)
}

func TestValidate_ExpiredYear(t *testing.T) {
	// 01/20 against a 2024 clock
	d := validDraft()
	d.ExpiryMonth = "01"
	d.ExpiryYear = "20"
	require.ErrorIs(t, d.Validate(now), ErrCardExpired)
}

func TestValidate_ExpiredMonthInCurrentYear(t *testing.T) {
	d := validDraft()
	d.ExpiryMonth = "05"
	d.ExpiryYear = "24"
	require.ErrorIs(t, d.Validate(now), ErrCardExpired)
}

func TestValidate_CurrentMonthStillValid(t *testing.T) {
	d := validDraft()
	d.ExpiryMonth = "06"
	d.ExpiryYear = "24"
	require.NoError(t, d.Validate(now))
}

func TestValidate_YearBeyondWindow(t *testing.T) {
	d := validDraft()
	d.ExpiryYear = "44" // 2044 >= 2024+20
	require.ErrorIs(t, d.Validate(now), ErrExpiryTooFar)

	d.ExpiryYear = "43"
	require.NoError(t, d.Validate(now))
}

func TestValidate_BadMonth(t *testing.T) {
	d := validDraft()
	d.ExpiryMonth = "13"
	require.ErrorIs(t, d.Validate(now), ErrExpiryFormat)

	d.ExpiryMonth = "00"
	require.ErrorIs(t, d.Validate(now), ErrExpiryFormat)
}

func TestValidate_MissingFields(t *testing.T) {
	d := validDraft()
	d.HolderName = ""
	require.Error(t, d.Validate(now))

	d = validDraft()
	d.CVV = "12"
	require.Error(t, d.Validate(now))
}

func TestSummary(t *testing.T) {
	s := validDraft().Summary()
	assert.Equal(t, CardTypeVisa, s.CardType)
	assert.Equal(t, "1111", s.LastFour)
	assert.Equal(t, "John Doe", s.HolderName)
	assert.Equal(t, "12/28", s.ExpiryDate)
	assert.NotContains(t, s.LastFour, " ")
}
