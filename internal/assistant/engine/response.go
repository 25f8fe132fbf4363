package engine

import (
	"regexp"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

var emojiRE = regexp.MustCompile(`[\x{1F300}-\x{1FAFF}\x{2600}-\x{27BF}\x{FE0F}\x{2B00}-\x{2BFF}]`)

var multiSpaceRE = regexp.MustCompile(`[ \t]{2,}`)

// Finalize normalizes the assistant reply before it is persisted and shown:
// an empty reply becomes the localized acknowledgment, checkout-step replies
// lose their emoji and get no follow-up, and every other reply has the
// configured follow-up line appended once.
func Finalize(s *model.ConversationState) {
	if s.Ended() {
		return
	}

	if strings.TrimSpace(s.AssistantMessage) == "" {
		s.AssistantMessage = ux.T(s, "fallback_ok", nil)
	}

	// Checkout replies are stripped and left alone; no follow-up nudging
	// while the user is mid-purchase.
	switch s.Mode {
	case model.ModeCheckoutConfirm, model.ModeCollectShipping, model.ModeCheckoutReview:
		s.AssistantMessage = stripEmoji(s.AssistantMessage)
		return
	}

	appendFollowUp(s, strings.TrimSpace(ux.T(s, "follow_up", nil)))
}

// appendFollowUp adds the follow-up line once, skipping it when the reply
// already carries it in any casing.
func appendFollowUp(s *model.ConversationState, followUp string) {
	if followUp == "" || followUp == "follow_up" {
		return
	}
	if strings.Contains(strings.ToLower(s.AssistantMessage), strings.ToLower(followUp)) {
		return
	}
	s.AssistantMessage += "\n\n" + followUp
}

func stripEmoji(text string) string {
	text = emojiRE.ReplaceAllString(text, "")
	text = multiSpaceRE.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
