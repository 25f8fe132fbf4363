package routing

import (
	"regexp"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

var exitKeywords = []string{
	"salir", "terminar", "finalizar", "cerrar", "fin",
	"exit", "end", "quit", "bye", "adiós", "adios",
}

var exitKeywordREs = compileWordREs(exitKeywords)

func compileWordREs(words []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		res = append(res, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return res
}

// ruleExit terminates the session on explicit exit keywords. Checkout
// phrases are excluded first: "finalizar compra" is a purchase, not a
// goodbye.
func (r *Rules) ruleExit(s *model.ConversationState) bool {
	text := msgLower(s)

	if checkoutRE.MatchString(text) {
		return false
	}

	for _, re := range exitKeywordREs {
		if re.MatchString(text) {
			s.Mode = model.ModeEnd
			s.ShouldEnd = true
			s.AssistantMessage = ux.T(s, "ended", nil)
			return true
		}
	}
	return false
}

// ruleModeGuardrails pins in-progress checkout steps to their dedicated
// handlers so no later rule can derail them.
func (r *Rules) ruleModeGuardrails(s *model.ConversationState) bool {
	switch s.Mode {
	case model.ModeCheckoutConfirm:
		s.NextNode = NodeHandleConfirm
		return true
	case model.ModeCheckoutReview:
		s.NextNode = NodeHandleReview
		return true
	case model.ModeCollectShipping:
		// Shipping data arrives through the UI form; chat input just gets a
		// reminder to finish it.
		s.UIShowCheckoutForm = true
		s.AssistantMessage = ux.T(s, "checkout_form_open_reminder", nil)
		s.NextNode = NodeEcho
		return true
	}
	return false
}

// ruleCheckout routes checkout intent to the confirmation step.
func (r *Rules) ruleCheckout(s *model.ConversationState) bool {
	text := msgLower(s)
	if text != "" && checkoutRE.MatchString(text) {
		s.NextNode = NodeCheckoutConfirm
		return true
	}
	return false
}
