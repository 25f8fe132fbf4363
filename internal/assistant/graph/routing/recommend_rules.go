package routing

import (
	"regexp"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/parse"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

var recommendTriggerRE = regexp.MustCompile(`\b(recom|recommend)\w*`)

// ruleRecommend drives the recommendation flow. It triggers on an explicit
// "recommend" keyword or on an already-pending clarification, merges newly
// parsed slots into state, and either asks a clarifying question or routes
// to the recommend handler.
func (r *Rules) ruleRecommend(s *model.ConversationState) bool {
	text := msgLower(s)

	trigger := recommendTriggerRE.MatchString(text)
	if !trigger && !s.PendingRecommendClarification {
		return false
	}

	if detected := DetectLanguage(s.UserMessage); detected != "" {
		s.PreferredLanguage = detected
	}

	mergeRecommendSlots(s, parse.ParseRecommendSlots(s.UserMessage))

	if s.RecommendationEmpty() {
		s.AssistantMessage = ux.T(s, "recommend_clarification_prompt", nil)
		s.NextNode = NodeEcho
		s.PendingRecommendClarification = true
		return true
	}

	s.PendingRecommendClarification = false
	s.NextNode = NodeRecommendProduct
	return true
}

// mergeRecommendSlots overlays newly parsed constraints onto the ones
// collected in previous turns; absent fields never erase earlier answers.
func mergeRecommendSlots(s *model.ConversationState, slots parse.RecommendSlots) {
	if len(slots.Families) > 0 {
		s.RecommendedFamilies = slots.Families
	}
	if slots.Audience != "" {
		s.RecommendedAudience = slots.Audience
	}
	if slots.MinPrice != nil {
		s.RecommendedMinPrice = slots.MinPrice
	}
	if slots.MaxPrice != nil {
		s.RecommendedMaxPrice = slots.MaxPrice
	}
}
