package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/graph"
	"github.com/cartchat-core-poc/server/internal/assistant/llm"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/repo"
)

func newTestEngine(t *testing.T) (*ChatEngine, *repo.MemorySessionStore) {
	t.Helper()

	cat, err := catalog.Load()
	require.NoError(t, err)

	runner, err := graph.BuildTurnGraph(context.Background(), graph.Config{
		Catalog: cat,
		Router:  llm.Disabled{},
	})
	require.NoError(t, err)

	store := repo.NewMemorySessionStore()
	return NewChatEngine(store, runner, model.EngineConfig{DefaultLanguage: "es"}), store
}

func TestStartSessionWelcomeAndIdempotence(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	state, err := eng.StartSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "es", state.PreferredLanguage)
	assert.NotEmpty(t, state.AssistantMessage)
	assert.Equal(t, model.ModeCatalog, state.Mode)

	// A second start returns the same session untouched.
	again, err := eng.StartSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, again.SessionID)
}

func TestProcessTurnAddByID(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	out, err := eng.ProcessTurn(ctx, "s1", "añade 2 del 301")
	require.NoError(t, err)

	require.Len(t, out.Cart, 1)
	assert.Equal(t, 301, out.Cart[0].ProductID)
	assert.Equal(t, 2, out.Cart[0].Qty)
	assert.Equal(t, "cart", out.Mode)
	assert.NotEmpty(t, out.Reply)
}

func TestProcessTurnBulkWithAbsentRemoval(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	out, err := eng.ProcessTurn(ctx, "s1", "añade 3 del 310, 2 del 302 y quita 1 del 307")
	require.NoError(t, err)

	byID := map[int]int{}
	for _, item := range out.Cart {
		byID[item.ProductID] = item.Qty
	}
	assert.Equal(t, 3, byID[310])
	assert.Equal(t, 2, byID[302])
	assert.NotContains(t, byID, 307)
	assert.NotEmpty(t, out.Reply)
}

func TestProcessTurnCatalogAndRecommend(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	out, err := eng.ProcessTurn(ctx, "s1", "muéstrame el catálogo")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Products)

	out, err = eng.ProcessTurn(ctx, "s1", "recomiéndame algo amaderado para hombre por menos de 130 euros")
	require.NoError(t, err)
	require.NotEmpty(t, out.Products)
	for _, p := range out.Products {
		assert.LessOrEqual(t, p.Price, 130.0)
	}
}

func TestProcessTurnOutOfScope(t *testing.T) {
	eng, _ := newTestEngine(t)

	out, err := eng.ProcessTurn(context.Background(), "s1", "jaja lol")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Reply)
	assert.Equal(t, "catalog", out.Mode)
}

func TestProcessTurnGreetingSwitchesLanguage(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	out, err := eng.ProcessTurn(ctx, "s1", "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Reply)

	state, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "en", state.PreferredLanguage)

	_, err = eng.ProcessTurn(ctx, "s1", "hola")
	require.NoError(t, err)
	state, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "es", state.PreferredLanguage)
}

func TestCheckoutFlowEndToEnd(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.ProcessTurn(ctx, "s1", "añade 2 del 301")
	require.NoError(t, err)

	out, err := eng.ProcessTurn(ctx, "s1", "finalizar compra")
	require.NoError(t, err)
	assert.Equal(t, "checkout_confirm", out.Mode)

	out, err = eng.ProcessTurn(ctx, "s1", "sí")
	require.NoError(t, err)
	assert.Equal(t, "collect_shipping", out.Mode)
	assert.True(t, out.ShowCheckoutForm)

	// Chat input mid-form only reminds; the form stays open.
	out, err = eng.ProcessTurn(ctx, "s1", "que tal")
	require.NoError(t, err)
	assert.True(t, out.ShowCheckoutForm)

	out, err = eng.SubmitCheckoutForm(ctx, "s1", model.ShippingInfo{
		FullName:     "Ana García",
		AddressLine1: "Calle Mayor 1",
		City:         "Madrid",
		PostalCode:   "28001",
		Phone:        "600123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "checkout_review", out.Mode)
	assert.False(t, out.ShowCheckoutForm)
	assert.Contains(t, out.Reply, "Ana García")

	out, err = eng.ProcessTurn(ctx, "s1", "sí")
	require.NoError(t, err)
	assert.Equal(t, "catalog", out.Mode)
	assert.Empty(t, out.Cart)
	assert.NotEmpty(t, out.Reply)
}

func TestSubmitCheckoutFormValidation(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.ProcessTurn(ctx, "s1", "añade 1 del 301")
	require.NoError(t, err)
	_, err = eng.ProcessTurn(ctx, "s1", "finalizar compra")
	require.NoError(t, err)
	_, err = eng.ProcessTurn(ctx, "s1", "sí")
	require.NoError(t, err)

	out, err := eng.SubmitCheckoutForm(ctx, "s1", model.ShippingInfo{FullName: "Ana"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.FormError)
	assert.True(t, out.ShowCheckoutForm)
	assert.Equal(t, "collect_shipping", out.Mode)

	out, err = eng.SubmitCheckoutForm(ctx, "s1", model.ShippingInfo{
		FullName:     "Ana García",
		AddressLine1: "Calle Mayor 1",
		City:         "Madrid",
		PostalCode:   "28OO1",
		Phone:        "600123456",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.FormError)
	assert.True(t, out.ShowCheckoutForm)

	out, err = eng.SubmitCheckoutForm(ctx, "s1", model.ShippingInfo{
		FullName:     "Ana García",
		AddressLine1: "Calle Mayor 1",
		City:         "Madrid",
		PostalCode:   "28001",
		Phone:        "six hundred",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.FormError)
}

func TestSubmitCheckoutFormUnknownSession(t *testing.T) {
	eng, _ := newTestEngine(t)

	_, err := eng.SubmitCheckoutForm(context.Background(), "nope", model.ShippingInfo{})
	assert.Error(t, err)
}

func TestEndedSessionReplaysClosing(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	out, err := eng.ProcessTurn(ctx, "s1", "salir")
	require.NoError(t, err)
	assert.True(t, out.ShouldEnd)

	out, err = eng.ProcessTurn(ctx, "s1", "añade 2 del 301")
	require.NoError(t, err)
	assert.True(t, out.ShouldEnd)
	assert.Empty(t, out.Cart)
}

func TestReset(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.ProcessTurn(ctx, "s1", "añade 2 del 301")
	require.NoError(t, err)

	require.NoError(t, eng.Reset(ctx, "s1"))

	state, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestDisambiguationAcrossTurns(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	out, err := eng.ProcessTurn(ctx, "s1", "añade un dior")
	require.NoError(t, err)
	assert.Empty(t, out.Cart)
	assert.NotEmpty(t, out.Reply)

	out, err = eng.ProcessTurn(ctx, "s1", "1")
	require.NoError(t, err)
	require.Len(t, out.Cart, 1)
	assert.Equal(t, 301, out.Cart[0].ProductID)
}
