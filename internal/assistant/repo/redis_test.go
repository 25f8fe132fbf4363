package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

func newTestStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisSessionStore(rdb, time.Minute), mr
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	state := model.NewConversationState("s1")
	state.PreferredLanguage = "es"
	state.Cart = []model.CartItem{{ProductID: 301, Qty: 2}}
	state.Mode = model.ModeCart

	require.NoError(t, store.Set(ctx, state))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, model.ModeCart, got.Mode)
	assert.Equal(t, "es", got.PreferredLanguage)
	require.Len(t, got.Cart, 1)
	assert.Equal(t, 301, got.Cart[0].ProductID)
	assert.Equal(t, 2, got.Cart[0].Qty)
}

func TestRedisSessionStoreMissingSession(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessionStoreTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, model.NewConversationState("s1")))
	require.True(t, mr.Exists("session:s1:state"))

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessionStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, model.NewConversationState("s1")))
	require.NoError(t, store.Delete(ctx, "s1"))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting a missing session is a no-op.
	require.NoError(t, store.Delete(ctx, "s1"))
}

func TestMemorySessionStoreIsolation(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	state := model.NewConversationState("s1")
	state.Cart = []model.CartItem{{ProductID: 301, Qty: 1}}
	require.NoError(t, store.Set(ctx, state))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)

	// Mutating the returned copy must not affect the stored value.
	got.Cart[0].Qty = 99

	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Cart[0].Qty)
}
