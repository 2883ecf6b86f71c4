package receipt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/storage"
)

func TestHandoff_TakeConsumesExactlyOnce(t *testing.T) {
	ctx := context.Background()
	sut := NewHandoff(storage.NewMemory())

	placed := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, sut.Put(ctx, domain.OrderReceipt{
		OrderID:  42,
		PlacedAt: placed,
		Items:    []domain.CartItem{{ProductID: 1, Quantity: 3}},
		Total:    32.40,
	}))

	got, err := sut.Take(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.OrderID)
	assert.True(t, got.PlacedAt.Equal(placed))
	assert.Len(t, got.Items, 1)

	_, err = sut.Take(ctx)
	require.ErrorIs(t, err, ErrNoReceipt)
}

func TestHandoff_TakeWithoutPut(t *testing.T) {
	sut := NewHandoff(storage.NewMemory())
	_, err := sut.Take(context.Background())
	require.ErrorIs(t, err, ErrNoReceipt)
}
