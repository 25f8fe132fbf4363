// Package llm hosts the optional model-backed intent router. The engine
// works fully without it; when enabled it is consulted only for turns no
// deterministic rule claimed, and every failure degrades to an unknown
// intent instead of surfacing to the user.
package llm

import (
	"context"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

// Interpreter proposes an intent and slots for the current turn.
type Interpreter interface {
	Interpret(ctx context.Context, state *model.ConversationState) (model.RouterResult, error)
}

// Disabled is the no-op interpreter used when no router is configured.
type Disabled struct{}

func (Disabled) Interpret(ctx context.Context, state *model.ConversationState) (model.RouterResult, error) {
	return model.UnknownResult(), nil
}
