// Package graph wires the routing pipeline and the turn handlers into a
// compiled eino graph. The interpret node decides, the branch dispatches,
// every handler terminates the turn.
package graph

import (
	"context"
	"regexp"
	"strconv"

	"github.com/cartchat-core-poc/server/internal/assistant/graph/routing"
	"github.com/cartchat-core-poc/server/internal/assistant/llm"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
	logx "github.com/cartchat-core-poc/server/pkg/logger"
)

// interpreter is the graph's first node. It runs the deterministic rules
// and, only for turns no rule claimed, consults the optional model router
// before falling back to the terminal out-of-scope reply.
type interpreter struct {
	rules  *routing.Rules
	router llm.Interpreter
	cfg    model.RouterModelConfig
}

func (i *interpreter) Interpret(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	if s.Ended() {
		s.NextNode = routing.NodeEcho
		return s, nil
	}

	s.ResetTurnOutputs()

	if i.rules.Route(s) {
		return s, nil
	}

	if i.cfg.Enabled && i.router != nil {
		result, err := i.router.Interpret(ctx, s)
		if err != nil {
			logx.Warn().Err(err).Str("session_id", s.SessionID).Msg("Router interpretation failed")
		}
		if i.applyRouterResult(s, result) {
			return s, nil
		}
	}

	i.rules.OutOfScope(s)
	return s, nil
}

var literalIDRE = regexp.MustCompile(`\b\d{3}\b`)

// applyRouterResult translates an accepted interpretation into routing state.
// It returns false when the result does not clear the gate, so the caller
// falls through to the out-of-scope reply.
func (i *interpreter) applyRouterResult(s *model.ConversationState, result model.RouterResult) bool {
	if result.Intent == model.IntentUnknown || result.Confidence < i.cfg.MinConfidence {
		return false
	}
	if !modeAccepts(s.Mode, result.Intent) {
		return false
	}

	s.LastIntent = string(result.Intent)
	s.LastConfidence = result.Confidence

	if (result.Language == "es" || result.Language == "en") && !routing.ExplicitLanguageSwitch(s.UserMessage) {
		s.PreferredLanguage = result.Language
	}

	// Product ids are only trusted when they literally appear in the turn.
	productID := 0
	if result.ProductID != 0 && literalIDRE.MatchString(s.UserMessage) {
		if containsToken(s.UserMessage, result.ProductID) {
			productID = result.ProductID
		}
	}

	switch result.Intent {
	case model.IntentShowCatalog:
		s.NextNode = routing.NodeShowCatalog

	case model.IntentShowProductDetail:
		if productID != 0 {
			s.SelectedProductID = productID
		}
		s.NextNode = routing.NodeShowDetail

	case model.IntentAddToCart:
		if productID != 0 {
			s.SelectedProductID = productID
		}
		s.NextNode = routing.NodeAddToCart

	case model.IntentRemoveFromCart:
		if productID != 0 {
			s.SelectedProductID = productID
		}
		s.NextNode = routing.NodeRemoveFromCart

	case model.IntentViewCart:
		s.NextNode = routing.NodeViewCart

	case model.IntentCheckout:
		s.NextNode = routing.NodeCheckoutConfirm

	case model.IntentConfirmYes, model.IntentConfirmNo:
		if s.Mode == model.ModeCheckoutReview {
			s.NextNode = routing.NodeHandleReview
		} else {
			s.NextNode = routing.NodeHandleConfirm
		}

	case model.IntentRecommendProduct:
		mergeRouterSlots(s, result)
		if s.RecommendationEmpty() {
			s.AssistantMessage = ux.T(s, "recommend_clarification_prompt", nil)
			s.PendingRecommendClarification = true
			s.NextNode = routing.NodeEcho
			return true
		}
		s.PendingRecommendClarification = false
		s.NextNode = routing.NodeRecommendProduct

	case model.IntentBulkCartUpdate:
		if len(result.Actions) == 0 {
			return false
		}
		s.PendingActions = result.Actions
		s.NextNode = routing.NodeBulkCartUpdate

	case model.IntentEnd:
		s.Mode = model.ModeEnd
		s.ShouldEnd = true
		s.AssistantMessage = ux.T(s, "ended", nil)
		s.NextNode = routing.NodeEcho

	default:
		return false
	}

	return true
}

// modeAccepts restricts which router intents a checkout step may act on.
// Mid-checkout, anything but a plain yes/no answer is noise.
func modeAccepts(mode model.Mode, intent model.Intent) bool {
	switch mode {
	case model.ModeCheckoutConfirm, model.ModeCheckoutReview:
		return intent == model.IntentConfirmYes || intent == model.IntentConfirmNo
	case model.ModeCollectShipping:
		return false
	}
	return true
}

func mergeRouterSlots(s *model.ConversationState, result model.RouterResult) {
	if len(result.Families) > 0 {
		s.RecommendedFamilies = result.Families
	}
	if result.Audience != "" {
		s.RecommendedAudience = result.Audience
	}
	if result.MinPrice != nil {
		s.RecommendedMinPrice = result.MinPrice
	}
	if result.MaxPrice != nil {
		s.RecommendedMaxPrice = result.MaxPrice
	}
}

func containsToken(text string, id int) bool {
	for _, m := range literalIDRE.FindAllString(text, -1) {
		if n, err := strconv.Atoi(m); err == nil && n == id {
			return true
		}
	}
	return false
}
