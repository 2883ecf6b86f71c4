package storage

import (
	"context"
	"errors"
)

// Storage is the session persistence port. The state store, the token
// namespaces and the one-shot order handoff all live behind it, so a
// deployment can pick in-memory, on-disk or redis-backed sessions
// without touching the callers.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Clear drops every key, ending the session.
	Clear(ctx context.Context) error
}

var ErrKeyNotFound = errors.New("key not found")
