package cart

import (
	"testing"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tshirt(stock int) domain.Product {
	return domain.Product{
		ProductID:     1,
		Name:          "Classic T-Shirt",
		BasePrice:     "10.00",
		StockQuantity: stock,
	}
}

func TestAdd_NewItem(t *testing.T) {
	next, err := Add(nil, tshirt(5), 2)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, int64(1), next[0].ProductID)
	assert.Equal(t, 2, next[0].Quantity)
	assert.Equal(t, 5, next[0].StockQuantity)
}

func TestAdd_MergesExistingItem(t *testing.T) {
	cart := []domain.CartItem{{ProductID: 1, BasePrice: "10.00", StockQuantity: 5, Quantity: 2}}

	next, err := Add(cart, tshirt(5), 1)
	require.NoError(t, err)
	require.Len(t, next, 1, "merge must not duplicate the product id")
	assert.Equal(t, 3, next[0].Quantity)

	// input cart is untouched
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestAdd_RejectsWhenProposedReachesCeiling(t *testing.T) {
	cart := []domain.CartItem{{ProductID: 1, BasePrice: "10.00", StockQuantity: 5, Quantity: 3}}

	next, err := Add(cart, tshirt(5), 2)
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Nil(t, next)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestAdd_RefreshesStockCeilingOnMerge(t *testing.T) {
	cart := []domain.CartItem{{ProductID: 1, BasePrice: "10.00", StockQuantity: 5, Quantity: 2}}

	next, err := Add(cart, tshirt(10), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, next[0].StockQuantity)
}

func TestAdd_NonPositiveQuantity(t *testing.T) {
	_, err := Add(nil, tshirt(5), 0)
	require.ErrorIs(t, err, ErrQuantityNotPositive)
	_, err = Add(nil, tshirt(5), -1)
	require.ErrorIs(t, err, ErrQuantityNotPositive)
}

func TestSetQuantity_Success(t *testing.T) {
	cart := []domain.CartItem{
		{ProductID: 1, BasePrice: "10.00", StockQuantity: 5, Quantity: 2},
		{ProductID: 2, BasePrice: "59.99", StockQuantity: 3, Quantity: 1},
	}

	next, err := SetQuantity(cart, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, next[0].Quantity)
	assert.Equal(t, 1, next[1].Quantity)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestSetQuantity_RejectsAtCeiling(t *testing.T) {
	cart := []domain.CartItem{{ProductID: 1, BasePrice: "10.00", StockQuantity: 5, Quantity: 3}}

	next, err := SetQuantity(cart, 1, 5)
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Nil(t, next)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestSetQuantity_RejectsZero(t *testing.T) {
	cart := []domain.CartItem{{ProductID: 1, StockQuantity: 5, Quantity: 3}}

	_, err := SetQuantity(cart, 1, 0)
	require.ErrorIs(t, err, ErrQuantityNotPositive)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestSetQuantity_UnknownProduct(t *testing.T) {
	_, err := SetQuantity(nil, 42, 1)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemove(t *testing.T) {
	cart := []domain.CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	next := Remove(cart, 1)
	require.Len(t, next, 1)
	assert.Equal(t, int64(2), next[0].ProductID)

	// removing an absent product is a no-op
	next = Remove(next, 99)
	assert.Len(t, next, 1)
}

func TestCount(t *testing.T) {
	cart := []domain.CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	}
	assert.Equal(t, 5, Count(cart))
	assert.Equal(t, 0, Count(nil))
}

func TestDerive_Scenario(t *testing.T) {
	// qty 2 at 10.00, Add one more, then totals at 8% tax
	cart := []domain.CartItem{{ProductID: 1, BasePrice: "10.00", StockQuantity: 5, Quantity: 2}}

	cart, err := Add(cart, tshirt(5), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, cart[0].Quantity)

	_, err = SetQuantity(cart, 1, 5)
	require.ErrorIs(t, err, ErrOutOfStock)

	totals, err := Derive(cart, 0.08)
	require.NoError(t, err)
	assert.Equal(t, "30.00", FormatAmount(totals.Subtotal))
	assert.Equal(t, "2.40", FormatAmount(totals.Tax))
	assert.Equal(t, "32.40", FormatAmount(totals.Total))
}

func TestDerive_EmptyCart(t *testing.T) {
	totals, err := Derive(nil, 0.13)
	require.NoError(t, err)
	assert.Zero(t, totals.Total)
}

func TestDerive_BadPrice(t *testing.T) {
	cart := []domain.CartItem{{ProductID: 7, BasePrice: "not-a-price", Quantity: 1}}

	_, err := Derive(cart, 0.08)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product 7")
}

func TestUniqueness_AfterOperationSequences(t *testing.T) {
	var (
		c   []domain.CartItem
		err error
	)
	products := []domain.Product{tshirt(100), {ProductID: 2, BasePrice: "59.99", StockQuantity: 100}}

	for i := 0; i < 10; i++ {
		for _, p := range products {
			c, err = Add(c, p, 1)
			require.NoError(t, err)
		}
	}

	seen := map[int64]bool{}
	for _, item := range c {
		require.False(t, seen[item.ProductID], "duplicate product id %d", item.ProductID)
		seen[item.ProductID] = true
	}
	assert.Equal(t, 10, c[0].Quantity)
}
