package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

func TestFinalizeEmptyReplyGetsFallback(t *testing.T) {
	s := model.NewConversationState("s1")
	s.PreferredLanguage = "en"

	Finalize(s)
	assert.Equal(t, "Okay.", s.AssistantMessage)
}

func TestFinalizeStripsEmojiInCheckoutModes(t *testing.T) {
	s := model.NewConversationState("s1")
	s.Mode = model.ModeCheckoutReview
	s.AssistantMessage = "Perfect ✅ Here is your order summary 🙌"

	Finalize(s)
	assert.NotContains(t, s.AssistantMessage, "✅")
	assert.NotContains(t, s.AssistantMessage, "🙌")
	assert.Equal(t, "Perfect Here is your order summary", s.AssistantMessage)
}

func TestFinalizeKeepsEmojiOutsideCheckout(t *testing.T) {
	s := model.NewConversationState("s1")
	s.Mode = model.ModeCart
	s.AssistantMessage = "Added ✅"

	Finalize(s)
	assert.Contains(t, s.AssistantMessage, "✅")
}

func TestAppendFollowUpDedupesCaseInsensitively(t *testing.T) {
	s := model.NewConversationState("s1")
	s.AssistantMessage = "Here is the catalog.\n\nANYTHING ELSE?"

	appendFollowUp(s, "Anything else?")
	assert.Equal(t, "Here is the catalog.\n\nANYTHING ELSE?", s.AssistantMessage)

	s.AssistantMessage = "Here is the catalog."
	appendFollowUp(s, "Anything else?")
	assert.Equal(t, "Here is the catalog.\n\nAnything else?", s.AssistantMessage)
}

func TestAppendFollowUpSkipsEmptyAndMissingKey(t *testing.T) {
	s := model.NewConversationState("s1")
	s.AssistantMessage = "Done."

	appendFollowUp(s, "")
	appendFollowUp(s, "follow_up")
	assert.Equal(t, "Done.", s.AssistantMessage)
}

func TestFinalizeSkipsEndedSessions(t *testing.T) {
	s := model.NewConversationState("s1")
	s.ShouldEnd = true
	s.AssistantMessage = ""

	Finalize(s)
	assert.Empty(t, s.AssistantMessage)
}
