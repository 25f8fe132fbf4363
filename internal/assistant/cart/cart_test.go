package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

func fixtureOps(t *testing.T) Ops {
	t.Helper()
	return Ops{Catalog: catalog.NewService([]model.Product{
		{ID: 301, Name: "Sauvage", Brand: "Dior", Price: 89.9, Stock: 5},
		{ID: 305, Name: "Invictus", Brand: "Paco Rabanne", Price: 72.0, Stock: 0},
		{ID: 315, Name: "Miss Dior", Brand: "Dior", Price: 110.0, Stock: 2},
	})}
}

func TestAddClampsToStock(t *testing.T) {
	ops := fixtureOps(t)
	st := model.NewConversationState("s1")

	ok, added := ops.Add(st, 315, 1)
	require.True(t, ok)
	assert.Equal(t, 1, added)

	// Stock is 2 with 1 already in the cart: only 1 more fits.
	ok, added = ops.Add(st, 315, 5)
	require.True(t, ok)
	assert.Equal(t, 1, added)
	assert.Equal(t, 2, st.CartQty(315))

	// Line is full now.
	ok, added = ops.Add(st, 315, 1)
	assert.False(t, ok)
	assert.Equal(t, 0, added)
}

func TestAddOutOfStockProduct(t *testing.T) {
	ops := fixtureOps(t)
	st := model.NewConversationState("s1")

	ok, added := ops.Add(st, 305, 1)
	assert.False(t, ok)
	assert.Equal(t, 0, added)
	assert.Empty(t, st.Cart)
}

func TestAddUnknownProductOrBadQty(t *testing.T) {
	ops := fixtureOps(t)
	st := model.NewConversationState("s1")

	ok, _ := ops.Add(st, 999, 1)
	assert.False(t, ok)

	ok, _ = ops.Add(st, 301, 0)
	assert.False(t, ok)
}

func TestRemoveRoundTrip(t *testing.T) {
	ops := fixtureOps(t)
	st := model.NewConversationState("s1")

	_, _ = ops.Add(st, 301, 3)

	ok, removed := ops.Remove(st, 301, 2)
	require.True(t, ok)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, st.CartQty(301))

	// Removing more than present clamps and deletes the line.
	ok, removed = ops.Remove(st, 301, 5)
	require.True(t, ok)
	assert.Equal(t, 1, removed)
	assert.Empty(t, st.Cart)

	ok, _ = ops.Remove(st, 301, 1)
	assert.False(t, ok)
}

func TestSetQty(t *testing.T) {
	ops := fixtureOps(t)
	st := model.NewConversationState("s1")

	ok, applied := ops.SetQty(st, 301, 3)
	require.True(t, ok)
	assert.Equal(t, 3, applied)
	assert.Equal(t, 3, st.CartQty(301))

	// Clamped to stock.
	ok, applied = ops.SetQty(st, 301, 10)
	require.True(t, ok)
	assert.Equal(t, 5, applied)

	// Zero deletes the line and stays successful and idempotent.
	ok, applied = ops.SetQty(st, 301, 0)
	require.True(t, ok)
	assert.Equal(t, 0, applied)
	assert.Empty(t, st.Cart)

	ok, _ = ops.SetQty(st, 301, 0)
	assert.True(t, ok)

	ok, _ = ops.SetQty(st, 999, 2)
	assert.False(t, ok)
}

func TestTotal(t *testing.T) {
	ops := fixtureOps(t)
	st := model.NewConversationState("s1")

	assert.Equal(t, 0.0, ops.Total(st))

	_, _ = ops.Add(st, 301, 2)
	_, _ = ops.Add(st, 315, 1)
	assert.InDelta(t, 2*89.9+110.0, ops.Total(st), 0.001)
}
