package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

func testDeps(t *testing.T) *Deps {
	t.Helper()
	svc, err := catalog.Load()
	require.NoError(t, err)
	return NewDeps(svc)
}

func TestBulkCartUpdateAppliesMixedBatch(t *testing.T) {
	d := testDeps(t)
	s := model.NewConversationState("s1")
	s.PendingActions = []model.CartAction{
		{Op: model.CartOpAdd, ProductID: 310, Qty: 3},
		{Op: model.CartOpAdd, ProductID: 302, Qty: 2},
		{Op: model.CartOpRemove, ProductID: 307, Qty: 1},
	}

	out, err := d.BulkCartUpdate(context.Background(), s)
	require.NoError(t, err)

	// 307 was never in the cart; the batch still completes for the rest.
	assert.Equal(t, 3, out.CartQty(310))
	assert.Equal(t, 2, out.CartQty(302))
	assert.Equal(t, 0, out.CartQty(307))
	assert.Equal(t, model.ModeCart, out.Mode)
	assert.NotEmpty(t, out.AssistantMessage)
	require.NotNil(t, out.UICartTotal)
	assert.InDelta(t, 3*105.0+2*124.5, *out.UICartTotal, 0.001)

	// Pending bulk state never survives a completed batch.
	assert.Empty(t, out.PendingActions)
	assert.Empty(t, out.PendingNameActions)
	assert.Empty(t, out.PendingBulkOp)
}

func TestBulkCartUpdateRemoveJudgedAgainstOriginalCart(t *testing.T) {
	d := testDeps(t)
	s := model.NewConversationState("s1")
	s.Cart = []model.CartItem{{ProductID: 301, Qty: 2}}
	s.PendingActions = []model.CartAction{
		{Op: model.CartOpAdd, ProductID: 301, Qty: 1},
		{Op: model.CartOpRemove, ProductID: 301, Qty: 3},
	}

	out, err := d.BulkCartUpdate(context.Background(), s)
	require.NoError(t, err)

	// The remove of 3 is judged against the 2 units the cart held before the
	// batch, not against the quantity the earlier add raised it to. It is
	// rejected with a "you only have 2" line and the add stands.
	assert.Equal(t, 3, out.CartQty(301))
	assert.Contains(t, out.AssistantMessage, "2")
}

func TestBulkCartUpdateRemoveMoreThanPresentReports(t *testing.T) {
	d := testDeps(t)
	s := model.NewConversationState("s1")
	s.Cart = []model.CartItem{{ProductID: 301, Qty: 1}}
	s.PendingActions = []model.CartAction{
		{Op: model.CartOpRemove, ProductID: 301, Qty: 5},
	}

	out, err := d.BulkCartUpdate(context.Background(), s)
	require.NoError(t, err)

	// Over-removal is reported, not clamped; the line stays untouched.
	assert.Equal(t, 1, out.CartQty(301))
}

func TestBulkCartUpdateNameResolutionSingleMatch(t *testing.T) {
	d := testDeps(t)
	s := model.NewConversationState("s1")
	s.PendingActions = []model.CartAction{{Op: model.CartOpAdd, ProductID: 310, Qty: 2}}
	s.PendingNameActions = []string{"add|1|sauvage"}

	out, err := d.BulkCartUpdate(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 2, out.CartQty(310))
	assert.Equal(t, 1, out.CartQty(301))
	assert.Empty(t, out.PendingNameActions)
}

func TestBulkCartUpdateNameResolutionAsksOnTie(t *testing.T) {
	d := testDeps(t)
	s := model.NewConversationState("s1")
	s.UserMessage = "añade 1 del 310 y un dior"
	s.PendingActions = []model.CartAction{{Op: model.CartOpAdd, ProductID: 310, Qty: 1}}
	s.PendingNameActions = []string{"add|1|dior"}

	out, err := d.BulkCartUpdate(context.Background(), s)
	require.NoError(t, err)

	// Two Dior products: the batch pauses and asks instead of guessing.
	assert.Empty(t, out.Cart)
	assert.Equal(t, model.CartOpAdd, out.PendingBulkOp)
	assert.ElementsMatch(t, []int{301, 315}, out.CandidateProducts)
	require.Len(t, out.PendingActions, 1)
	assert.NotEmpty(t, out.AssistantMessage)

	// Next turn: the user answers with an index; the batch resumes and
	// applies both actions.
	chosen := out.CandidateProducts[0]
	out.UserMessage = "1"
	resumed, err := d.BulkCartUpdate(context.Background(), out)
	require.NoError(t, err)

	assert.Equal(t, 1, resumed.CartQty(310))
	assert.Equal(t, 1, resumed.CartQty(chosen))
	assert.Empty(t, resumed.PendingBulkOp)
	assert.Empty(t, resumed.PendingNameActions)
}

func TestBulkCartUpdateUnparsableChoiceReasks(t *testing.T) {
	d := testDeps(t)
	s := model.NewConversationState("s1")
	s.UserMessage = "ninguno de esos"
	s.PendingActions = []model.CartAction{{Op: model.CartOpAdd, ProductID: 310, Qty: 1}}
	s.ArmBulkChoice(model.CartOpAdd, []int{301, 315}, 1)

	out, err := d.BulkCartUpdate(context.Background(), s)
	require.NoError(t, err)

	// Re-ask keeps everything pending so the next reply can still resolve.
	assert.Empty(t, out.Cart)
	assert.Equal(t, model.CartOpAdd, out.PendingBulkOp)
	assert.Equal(t, []int{301, 315}, out.CandidateProducts)
	require.Len(t, out.PendingActions, 1)
}

func TestBulkCartUpdateUnknownNameAbortsBatch(t *testing.T) {
	d := testDeps(t)
	s := model.NewConversationState("s1")
	s.PendingActions = []model.CartAction{{Op: model.CartOpAdd, ProductID: 310, Qty: 2}}
	s.PendingNameActions = []string{"add|1|xyzzy"}

	out, err := d.BulkCartUpdate(context.Background(), s)
	require.NoError(t, err)

	// Nothing is applied, not even the already-resolved action.
	assert.Empty(t, out.Cart)
	assert.Empty(t, out.PendingActions)
	assert.Empty(t, out.PendingNameActions)
	assert.NotEmpty(t, out.AssistantMessage)
}

func TestBulkCartUpdateEmptyBatch(t *testing.T) {
	d := testDeps(t)
	s := model.NewConversationState("s1")

	out, err := d.BulkCartUpdate(context.Background(), s)
	require.NoError(t, err)
	assert.NotEmpty(t, out.AssistantMessage)
	assert.Empty(t, out.Cart)
}
