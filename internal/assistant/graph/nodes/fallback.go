package nodes

import (
	"context"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

// Echo is the terminal pass-through node. It never overrides a reply set by
// a rule or another node; with nothing set at all, the engine's finalize
// step substitutes the localized fallback.
func (d *Deps) Echo(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	return s, nil
}
