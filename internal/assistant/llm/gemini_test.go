package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

func TestDecodeRouterResultPlainJSON(t *testing.T) {
	result, err := decodeRouterResult(`{"intent":"add_to_cart","confidence":0.91,"language":"es","product_id":301}`)
	require.NoError(t, err)

	assert.Equal(t, model.IntentAddToCart, result.Intent)
	assert.InDelta(t, 0.91, result.Confidence, 0.001)
	assert.Equal(t, "es", result.Language)
	assert.Equal(t, 301, result.ProductID)
}

func TestDecodeRouterResultFencedJSON(t *testing.T) {
	content := "```json\n{\"intent\":\"bulk_cart_update\",\"confidence\":0.8,\"actions\":[{\"op\":\"add\",\"product_id\":310,\"qty\":2},{\"op\":\"remove\",\"product_id\":307,\"qty\":1}]}\n```"

	result, err := decodeRouterResult(content)
	require.NoError(t, err)

	assert.Equal(t, model.IntentBulkCartUpdate, result.Intent)
	require.Len(t, result.Actions, 2)
	assert.Equal(t, model.CartOpAdd, result.Actions[0].Op)
	assert.Equal(t, 310, result.Actions[0].ProductID)
	assert.Equal(t, model.CartOpRemove, result.Actions[1].Op)
}

func TestDecodeRouterResultRecommendSlots(t *testing.T) {
	result, err := decodeRouterResult(`{"intent":"recommend_product","confidence":0.75,"family":["citrus","woody"],"audience":"male","max_price":100}`)
	require.NoError(t, err)

	assert.Equal(t, model.IntentRecommendProduct, result.Intent)
	assert.Equal(t, []string{"citrus", "woody"}, result.Families)
	assert.Equal(t, "male", result.Audience)
	require.NotNil(t, result.MaxPrice)
	assert.InDelta(t, 100, *result.MaxPrice, 0.001)
}

func TestDecodeRouterResultGarbage(t *testing.T) {
	_, err := decodeRouterResult("I cannot help with that.")
	assert.Error(t, err)

	_, err = decodeRouterResult("{not json}")
	assert.Error(t, err)
}

func TestDecodeRouterResultMissingIntentDefaultsUnknown(t *testing.T) {
	result, err := decodeRouterResult(`{"confidence":0.9}`)
	require.NoError(t, err)
	assert.Equal(t, model.IntentUnknown, result.Intent)
}
