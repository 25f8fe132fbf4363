package routing

import (
	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

// Rule inspects (and may mutate) the state for the current turn. It returns
// true when it claimed the turn, stopping further evaluation.
type Rule func(*model.ConversationState) bool

// Rules bundles the ordered rule pipeline with the catalog it needs for
// building disambiguation prompts.
type Rules struct {
	Catalog *catalog.Service
}

func NewRules(cat *catalog.Service) *Rules {
	return &Rules{Catalog: cat}
}

// Ordered returns the routing rules in priority order. Order is load-bearing:
// exit and in-flight clarifications come before everything, checkout
// guardrails before free-form intents, cart fallbacks last. The terminal
// out-of-scope rule is not in this list; the interpreter applies it after
// the optional model-based router has had its chance, keeping the pipeline
// total.
func (r *Rules) Ordered() []Rule {
	return []Rule{
		r.ruleExit,
		r.ruleLanguageDetection,
		r.rulePendingBulk,
		r.rulePendingProduct,
		r.ruleModeGuardrails,
		r.ruleCheckout,
		r.ruleRecommend,
		r.ruleShowCatalog,
		r.ruleHelp,
		r.ruleAdjustQty,
		r.ruleBulkCartIDs,
		r.ruleBulkCartNames,
		r.ruleSingleCartCommand,
		r.ruleImplicitCartOp,
		r.ruleViewCart,
		r.ruleProductDetail,
		r.ruleCartCommandsAny,
	}
}

// Route runs the pipeline and reports whether a rule claimed the turn.
func (r *Rules) Route(s *model.ConversationState) bool {
	for _, rule := range r.Ordered() {
		if rule(s) {
			return true
		}
	}
	return false
}

// OutOfScope is the terminal fallback; it always claims.
func (r *Rules) OutOfScope(s *model.ConversationState) {
	r.ruleOutOfScope(s)
}
