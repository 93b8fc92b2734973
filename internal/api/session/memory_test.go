package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	identity := Identity{UserID: "user-1", Username: "alice"}

	t.Run("SetThenGet", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Set(ctx, "token-1", identity, time.Hour))

		got, err := store.Get(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", got.UserID)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		store := NewMemoryStore()

		_, err := store.Get(ctx, "never-issued")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Set(ctx, "token-1", identity, time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := store.Get(ctx, "token-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Destroy", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Set(ctx, "token-1", identity, time.Hour))
		require.NoError(t, store.Destroy(ctx, "token-1"))

		_, err := store.Get(ctx, "token-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DestroyAbsentToken", func(t *testing.T) {
		store := NewMemoryStore()

		assert.NoError(t, store.Destroy(ctx, "never-issued"))
	})

	t.Run("TokensAreIndependent", func(t *testing.T) {
		store := NewMemoryStore()
		other := Identity{UserID: "user-2", Username: "bob"}

		require.NoError(t, store.Set(ctx, "token-1", identity, time.Hour))
		require.NoError(t, store.Set(ctx, "token-2", other, time.Hour))
		require.NoError(t, store.Destroy(ctx, "token-1"))

		got, err := store.Get(ctx, "token-2")
		require.NoError(t, err)
		assert.Equal(t, "bob", got.Username)
	})
}
