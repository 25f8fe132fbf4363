package routing

import (
	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

// ruleLanguageDetection maintains PreferredLanguage from a lightweight
// heuristic. It never claims the turn; it only updates state and passes.
func (r *Rules) ruleLanguageDetection(s *model.ConversationState) bool {
	detected := DetectLanguage(s.UserMessage)

	switch {
	case s.PreferredLanguage == "":
		if detected == "" {
			detected = "es"
		}
		s.PreferredLanguage = detected
	case ExplicitLanguageSwitch(s.UserMessage):
		if detected != "" {
			s.PreferredLanguage = detected
		}
	case detected != "" && detected != s.PreferredLanguage:
		s.PreferredLanguage = detected
	}

	return false
}
