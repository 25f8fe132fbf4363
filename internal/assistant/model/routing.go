package model

// Intent is the coarse action the router believes the user wants.
type Intent string

const (
	IntentShowCatalog       Intent = "show_catalog"
	IntentShowProductDetail Intent = "show_product_detail"
	IntentAddToCart         Intent = "add_to_cart"
	IntentRemoveFromCart    Intent = "remove_from_cart"
	IntentViewCart          Intent = "view_cart"
	IntentCheckout          Intent = "checkout_confirm"
	IntentConfirmYes        Intent = "confirm_yes"
	IntentConfirmNo         Intent = "confirm_no"
	IntentRecommendProduct  Intent = "recommend_product"
	IntentBulkCartUpdate    Intent = "bulk_cart_update"
	IntentEnd               Intent = "end"
	IntentUnknown           Intent = "unknown"
)

// RouterResult is the structured best-effort interpretation of a user
// message produced by the optional LLM router. The deterministic rule
// pipeline never produces one of these; it routes directly.
type RouterResult struct {
	Intent     Intent       `json:"intent"`
	Confidence float64      `json:"confidence"`
	Language   string       `json:"language,omitempty"`
	ProductID  int          `json:"product_id,omitempty"`
	Families   []string     `json:"family,omitempty"`
	Audience   string       `json:"audience,omitempty"`
	MinPrice   *float64     `json:"min_price,omitempty"`
	MaxPrice   *float64     `json:"max_price,omitempty"`
	Actions    []CartAction `json:"actions,omitempty"`
}

// UnknownResult is the degraded interpretation used whenever the router is
// disabled, unreachable, or returns something unusable.
func UnknownResult() RouterResult {
	return RouterResult{Intent: IntentUnknown, Confidence: 0}
}
