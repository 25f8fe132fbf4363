package routing

import (
	"regexp"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

var detailKeywords = []string{"muestrame", "muéstrame", "enseñame", "enséñame", "show me"}

var threeDigitRE = regexp.MustCompile(`\b\d{3}\b`)

// rulePendingProduct resumes a single-product disambiguation armed on a
// previous turn. A numeric reply on a set-qty clarification goes back to the
// quantity handler; everything else goes through choice resolution.
func (r *Rules) rulePendingProduct(s *model.ConversationState) bool {
	if s.PendingProductOp == "" || len(s.CandidateProducts) == 0 {
		return false
	}

	if choiceNumberRE.MatchString(s.UserMessage) && s.PendingProductOp == model.ProductOpSetQty {
		s.NextNode = NodeAdjustCartQty
		return true
	}
	s.NextNode = NodeResolveChoice
	return true
}

// ruleProductDetail claims "show me ..." style requests, with or without an
// explicit 3-digit id; the detail node resolves names itself.
func (r *Rules) ruleProductDetail(s *model.ConversationState) bool {
	text := msgLower(s)
	for _, k := range detailKeywords {
		if strings.Contains(text, k) {
			s.NextNode = NodeShowDetail
			return true
		}
	}
	return false
}
