package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/graph/routing"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

type stubRouter struct {
	result model.RouterResult
	called bool
}

func (s *stubRouter) Interpret(ctx context.Context, state *model.ConversationState) (model.RouterResult, error) {
	s.called = true
	return s.result, nil
}

func newTestInterpreter(t *testing.T, router *stubRouter, enabled bool) *interpreter {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return &interpreter{
		rules:  routing.NewRules(cat),
		router: router,
		cfg: model.RouterModelConfig{
			Enabled:       enabled,
			MinConfidence: 0.6,
		},
	}
}

func turnState(message string) *model.ConversationState {
	s := model.NewConversationState("s1")
	s.UserMessage = message
	return s
}

func TestInterpretRuleClaimSkipsRouter(t *testing.T) {
	router := &stubRouter{result: model.RouterResult{Intent: model.IntentViewCart, Confidence: 0.99}}
	i := newTestInterpreter(t, router, true)

	s := turnState("añade 2 del 301")
	_, err := i.Interpret(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, routing.NodeAddToCart, s.NextNode)
	assert.False(t, router.called)
}

func TestInterpretRouterAcceptedAboveThreshold(t *testing.T) {
	router := &stubRouter{result: model.RouterResult{
		Intent: model.IntentViewCart, Confidence: 0.9, Language: "en",
	}}
	i := newTestInterpreter(t, router, true)

	s := turnState("what did i pick earlier")
	_, err := i.Interpret(context.Background(), s)
	require.NoError(t, err)

	assert.True(t, router.called)
	assert.Equal(t, routing.NodeViewCart, s.NextNode)
	assert.Equal(t, "view_cart", s.LastIntent)
	assert.Equal(t, "en", s.PreferredLanguage)
}

func TestInterpretRouterRejectedBelowThreshold(t *testing.T) {
	router := &stubRouter{result: model.RouterResult{Intent: model.IntentViewCart, Confidence: 0.3}}
	i := newTestInterpreter(t, router, true)

	s := turnState("hmmmm mmm")
	_, err := i.Interpret(context.Background(), s)
	require.NoError(t, err)

	assert.True(t, router.called)
	assert.Equal(t, routing.NodeEcho, s.NextNode)
	assert.NotEmpty(t, s.AssistantMessage)
}

func TestInterpretRouterDisabledFallsToOutOfScope(t *testing.T) {
	router := &stubRouter{result: model.RouterResult{Intent: model.IntentViewCart, Confidence: 0.9}}
	i := newTestInterpreter(t, router, false)

	s := turnState("hmmmm mmm")
	_, err := i.Interpret(context.Background(), s)
	require.NoError(t, err)

	assert.False(t, router.called)
	assert.Equal(t, routing.NodeEcho, s.NextNode)
	assert.NotEmpty(t, s.AssistantMessage)
}

func TestInterpretRouterProductIDOnlyWhenLiteral(t *testing.T) {
	router := &stubRouter{result: model.RouterResult{
		Intent: model.IntentAddToCart, Confidence: 0.9, ProductID: 310,
	}}
	i := newTestInterpreter(t, router, true)

	// 310 never appears in the text, so the router's id is ignored.
	s := turnState("grab one more plz")
	_, err := i.Interpret(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, routing.NodeAddToCart, s.NextNode)
	assert.Zero(t, s.SelectedProductID)
}

func TestInterpretRouterBulkNeedsActions(t *testing.T) {
	router := &stubRouter{result: model.RouterResult{
		Intent: model.IntentBulkCartUpdate, Confidence: 0.9,
	}}
	i := newTestInterpreter(t, router, true)

	s := turnState("hmmmm mmm")
	_, err := i.Interpret(context.Background(), s)
	require.NoError(t, err)

	// No actions means nothing to execute: fall back to out-of-scope.
	assert.Equal(t, routing.NodeEcho, s.NextNode)
	assert.Empty(t, s.PendingActions)
}

func TestInterpretRouterEndIntent(t *testing.T) {
	router := &stubRouter{result: model.RouterResult{Intent: model.IntentEnd, Confidence: 0.95}}
	i := newTestInterpreter(t, router, true)

	s := turnState("hmmmm mmm")
	_, err := i.Interpret(context.Background(), s)
	require.NoError(t, err)

	assert.True(t, s.Ended())
	assert.NotEmpty(t, s.AssistantMessage)
}

func TestInterpretEndedSessionShortCircuits(t *testing.T) {
	router := &stubRouter{result: model.RouterResult{Intent: model.IntentViewCart, Confidence: 0.9}}
	i := newTestInterpreter(t, router, true)

	s := turnState("ver carrito")
	s.ShouldEnd = true
	_, err := i.Interpret(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, routing.NodeEcho, s.NextNode)
	assert.False(t, router.called)
}
