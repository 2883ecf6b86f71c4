// Package receipt implements the one-shot order handoff between the
// checkout flow and the confirmation surface. The payload is written
// once, consumed once, and is gone after the first Take.
package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/storage"
)

// HandoffKey is the storage key the pending receipt lives under.
const HandoffKey = "order"

var ErrNoReceipt = errors.New("no pending order receipt")

type Handoff struct {
	storage storage.Storage
}

func NewHandoff(st storage.Storage) *Handoff {
	return &Handoff{storage: st}
}

func (h *Handoff) Put(ctx context.Context, r domain.OrderReceipt) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}
	return h.storage.Set(ctx, HandoffKey, data)
}

// Take consumes the pending receipt, deleting it so a reload of the
// confirmation surface cannot replay it.
func (h *Handoff) Take(ctx context.Context) (*domain.OrderReceipt, error) {
	data, err := h.storage.Get(ctx, HandoffKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, ErrNoReceipt
	}
	if err != nil {
		return nil, err
	}

	var r domain.OrderReceipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}
	if err := h.storage.Delete(ctx, HandoffKey); err != nil {
		return nil, err
	}
	return &r, nil
}
