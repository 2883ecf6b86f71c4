package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// all backends must satisfy the same contract
func backends(t *testing.T) map[string]Storage {
	t.Helper()

	f, err := NewFile(t.TempDir())
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	r := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test-session")

	return map[string]Storage{
		"memory": NewMemory(),
		"file":   f,
		"redis":  r,
	}
}

func TestStorage_GetSetDelete(t *testing.T) {
	for name, sut := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := sut.Get(ctx, "missing")
			require.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, sut.Set(ctx, "token", []byte("abc")))
			got, err := sut.Get(ctx, "token")
			require.NoError(t, err)
			assert.Equal(t, []byte("abc"), got)

			require.NoError(t, sut.Set(ctx, "token", []byte("def")))
			got, err = sut.Get(ctx, "token")
			require.NoError(t, err)
			assert.Equal(t, []byte("def"), got)

			require.NoError(t, sut.Delete(ctx, "token"))
			_, err = sut.Get(ctx, "token")
			require.ErrorIs(t, err, ErrKeyNotFound)

			// deleting an absent key is fine
			require.NoError(t, sut.Delete(ctx, "token"))
		})
	}
}

func TestStorage_Clear(t *testing.T) {
	for name, sut := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, sut.Set(ctx, "shopping-store", []byte("{}")))
			require.NoError(t, sut.Set(ctx, "order", []byte("{}")))

			require.NoError(t, sut.Clear(ctx))

			_, err := sut.Get(ctx, "shopping-store")
			require.ErrorIs(t, err, ErrKeyNotFound)
			_, err = sut.Get(ctx, "order")
			require.ErrorIs(t, err, ErrKeyNotFound)
		})
	}
}

func TestRedis_SessionsAreIsolated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	a := NewRedis(client, "session-a")
	b := NewRedis(client, "session-b")

	require.NoError(t, a.Set(ctx, "token", []byte("a-token")))
	_, err := b.Get(ctx, "token")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, b.Set(ctx, "token", []byte("b-token")))
	require.NoError(t, a.Clear(ctx))

	got, err := b.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, []byte("b-token"), got)
}
