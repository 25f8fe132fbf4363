package routing

import (
	"regexp"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

var catalogKeywords = []string{
	// ES
	"catálogo", "catalogo", "ver el catálogo", "ver el catalogo", "el catálogo", "el catalogo",
	"que perfumes tienes", "que tienes para mostrarme", "que vendes", "que productos tienes",
	// EN
	"catalog", "catalogue", "the catalog", "show the catalog", "show me the catalog",
	"what perfumes do you have", "what do you have", "what do you sell",
	"list perfumes", "show me what you have",
}

var helpRE = regexp.MustCompile(`(?i)\b((que|qué)\s+(puedes|pod(es|és))\s+(hacer|ayudar)|(en\s+que|en\s+qué)\s+me\s+puedes\s+ayudar|ayuda|help|what\s+can\s+you\s+do|how\s+can\s+you\s+help|what\s+do\s+you\s+do)\b`)

// ruleShowCatalog routes browse requests via deterministic ES/EN keywords.
func (r *Rules) ruleShowCatalog(s *model.ConversationState) bool {
	text := msgLower(s)
	for _, k := range catalogKeywords {
		if strings.Contains(text, k) {
			s.NextNode = NodeShowCatalog
			return true
		}
	}
	return false
}

// ruleHelp answers explicit help requests with the canned capability
// summary and ends the turn.
func (r *Rules) ruleHelp(s *model.ConversationState) bool {
	msg := strings.TrimSpace(s.UserMessage)
	if msg == "" || !helpRE.MatchString(msg) {
		return false
	}
	s.AssistantMessage = ux.T(s, "help_message", nil)
	s.NextNode = NodeEcho
	return true
}
