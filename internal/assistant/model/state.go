package model

// Mode is the coarse phase of the shopping conversation. It acts as a small
// state machine that gates which intents are acceptable on a given turn.
type Mode string

const (
	ModeCatalog         Mode = "catalog"
	ModeCart            Mode = "cart"
	ModeCheckoutConfirm Mode = "checkout_confirm"
	ModeCollectShipping Mode = "collect_shipping"
	ModeCheckoutReview  Mode = "checkout_review"
	ModeEnd             Mode = "end"
)

// CartOp identifies a cart mutation extracted from user input.
type CartOp string

const (
	CartOpAdd    CartOp = "add"
	CartOpRemove CartOp = "remove"
)

// ProductOp identifies the operation a pending product disambiguation will
// complete once the user picks a candidate.
type ProductOp string

const (
	ProductOpAdd    ProductOp = "add"
	ProductOpRemove ProductOp = "remove"
	ProductOpSetQty ProductOp = "set_qty"
	ProductOpDetail ProductOp = "detail"
)

// CartAction is a single cart operation parsed from user input or proposed by
// the LLM router.
type CartAction struct {
	Op        CartOp `json:"op"`
	ProductID int    `json:"product_id"`
	Qty       int    `json:"qty"`
}

// CartItem is a single cart line (product + quantity). Qty is always >= 1;
// a line reaching zero is removed, never stored.
type CartItem struct {
	ProductID int `json:"product_id"`
	Qty       int `json:"qty"`
}

// ShippingInfo holds the shipping fields collected through the checkout form.
// Empty string means "not provided yet".
type ShippingInfo struct {
	FullName     string `json:"full_name"`
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Phone        string `json:"phone"`
}

// IsComplete reports whether every required shipping field is present.
func (s ShippingInfo) IsComplete() bool {
	return s.FullName != "" && s.AddressLine1 != "" && s.City != "" &&
		s.PostalCode != "" && s.Phone != ""
}

// Clear resets all shipping fields.
func (s *ShippingInfo) Clear() {
	*s = ShippingInfo{}
}

// ConversationState is the single source of truth for one session.
//
// Ownership model: one session's turns are serialized by the caller, so the
// state is mutated in place through the routing pipeline and the graph for
// the duration of a turn, then persisted as an opaque value by the session
// store. It must never be shared across sessions.
type ConversationState struct {
	// Session identity.
	SessionID string `json:"session_id"`

	// Core conversation fields. AssistantMessage is overwritten every turn.
	Mode             Mode   `json:"mode"`
	UserMessage      string `json:"user_message"`
	AssistantMessage string `json:"assistant_message"`

	// Checkout/shipping data.
	Shipping ShippingInfo `json:"shipping"`

	// Terminal flag: once set, subsequent turns only replay the closing copy.
	ShouldEnd bool `json:"should_end"`

	// Active product context and cart. SelectedProductID == 0 means no
	// active product (catalog ids are always three digits).
	SelectedProductID int        `json:"selected_product_id"`
	Cart              []CartItem `json:"cart"`

	// Router / intent metadata, kept for debugging and UX decisions.
	LastIntent     string  `json:"last_intent,omitempty"`
	LastConfidence float64 `json:"last_confidence,omitempty"`

	// Routing hint consumed by the graph branch; reset at the start of
	// every turn.
	NextNode string `json:"next_node,omitempty"`

	// Partially collected recommendation constraints.
	RecommendedFamilies []string `json:"recommended_families,omitempty"`
	RecommendedAudience string   `json:"recommended_audience,omitempty"`
	RecommendedMinPrice *float64 `json:"recommended_min_price,omitempty"`
	RecommendedMaxPrice *float64 `json:"recommended_max_price,omitempty"`

	// Actions queued by the router to be executed by the bulk handler.
	PendingActions []CartAction `json:"pending_actions,omitempty"`

	// UI projection for the frontend.
	UIProducts         []Product `json:"ui_products,omitempty"`
	UIProduct          *Product  `json:"ui_product,omitempty"`
	UICartTotal        *float64  `json:"ui_cart_total,omitempty"`
	UIShowCheckoutForm bool      `json:"ui_show_checkout_form"`
	UIFormError        string    `json:"ui_form_error,omitempty"`

	// Sticky language preference ("es"|"en").
	PreferredLanguage string `json:"preferred_language,omitempty"`

	// Single-product disambiguation: non-empty candidates plus a non-empty
	// op means the engine is waiting for the user to pick one.
	CandidateProducts []int     `json:"candidate_products,omitempty"`
	PendingProductOp  ProductOp `json:"pending_product_op,omitempty"`
	PendingQty        int       `json:"pending_qty,omitempty"`

	// Memory of the most recent cart mutation, used to resolve elliptical
	// follow-ups ("add 2 more").
	LastCartProductIDs []int  `json:"last_cart_product_ids,omitempty"`
	LastCartOp         string `json:"last_cart_op,omitempty"`
	LastCartQty        int    `json:"last_cart_qty,omitempty"`

	// In-flight bulk batch: serialized "op|qty|nameHint" entries drained as
	// a FIFO queue, plus the clarification fields for the action currently
	// blocked on user input.
	PendingNameActions []string `json:"pending_name_actions,omitempty"`
	PendingBulkOp      CartOp   `json:"pending_bulk_op,omitempty"`
	PendingBulkQty     int      `json:"pending_bulk_qty,omitempty"`

	PendingRecommendClarification bool `json:"pending_recommend_clarification,omitempty"`
}

// NewConversationState returns the initial state for a fresh session.
func NewConversationState(sessionID string) *ConversationState {
	return &ConversationState{
		SessionID: sessionID,
		Mode:      ModeCatalog,
	}
}

// Ended reports whether the conversation reached a terminal state.
func (s *ConversationState) Ended() bool {
	return s.ShouldEnd || s.Mode == ModeEnd
}

// CartQty returns the quantity of the given product currently in the cart,
// or 0 when absent.
func (s *ConversationState) CartQty(productID int) int {
	for _, item := range s.Cart {
		if item.ProductID == productID {
			return item.Qty
		}
	}
	return 0
}

// CartProductIDs returns the distinct product ids in the cart, in order.
func (s *ConversationState) CartProductIDs() []int {
	ids := make([]int, 0, len(s.Cart))
	seen := make(map[int]bool, len(s.Cart))
	for _, item := range s.Cart {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

// ArmProductChoice arms a single-product disambiguation, clearing any pending
// bulk clarification first. Single and bulk disambiguations must never be
// armed at the same time.
func (s *ConversationState) ArmProductChoice(op ProductOp, candidates []int, qty int) {
	s.PendingBulkOp = ""
	s.PendingBulkQty = 0
	s.CandidateProducts = candidates
	s.PendingProductOp = op
	s.PendingQty = qty
}

// ArmBulkChoice arms a bulk-batch disambiguation, clearing any pending
// single-product clarification first.
func (s *ConversationState) ArmBulkChoice(op CartOp, candidates []int, qty int) {
	s.PendingProductOp = ""
	s.PendingQty = 0
	s.CandidateProducts = candidates
	s.PendingBulkOp = op
	s.PendingBulkQty = qty
}

// ClearProductChoice resets the single-product disambiguation fields.
func (s *ConversationState) ClearProductChoice() {
	s.CandidateProducts = nil
	s.PendingProductOp = ""
	s.PendingQty = 0
}

// ClearBulkPending resets every field of an in-flight bulk batch. Every exit
// path of the bulk handler must call this so stale pending state never leaks
// into the next turn's routing.
func (s *ConversationState) ClearBulkPending() {
	s.PendingActions = nil
	s.PendingNameActions = nil
	s.PendingBulkOp = ""
	s.PendingBulkQty = 0
	s.CandidateProducts = nil
}

// ClearRecommendation resets the collected recommendation constraints.
func (s *ConversationState) ClearRecommendation() {
	s.PendingRecommendClarification = false
	s.RecommendedFamilies = nil
	s.RecommendedAudience = ""
	s.RecommendedMinPrice = nil
	s.RecommendedMaxPrice = nil
}

// RecommendationEmpty reports whether no usable recommendation constraint has
// been collected yet.
func (s *ConversationState) RecommendationEmpty() bool {
	return len(s.RecommendedFamilies) == 0 &&
		s.RecommendedAudience == "" &&
		s.RecommendedMinPrice == nil &&
		s.RecommendedMaxPrice == nil
}

// ResetTurnOutputs clears the per-turn reply and UI projection so routing
// starts from a clean slate.
func (s *ConversationState) ResetTurnOutputs() {
	s.AssistantMessage = ""
	s.UIProducts = nil
	s.UIProduct = nil
	s.UICartTotal = nil
	s.NextNode = ""
}
