package routing

import (
	"fmt"
	"regexp"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/parse"
)

var choiceNumberRE = regexp.MustCompile(`\b\d{1,3}\b`)

// rulePendingBulk resumes an in-flight bulk batch blocked on a
// disambiguation. A numeric reply re-enters the bulk handler; anything else
// abandons the pending clarification so stale state cannot leak into later
// turns.
func (r *Rules) rulePendingBulk(s *model.ConversationState) bool {
	if s.PendingBulkOp == "" || len(s.CandidateProducts) == 0 {
		return false
	}

	if choiceNumberRE.MatchString(s.UserMessage) {
		s.NextNode = NodeBulkCartUpdate
		return true
	}

	s.ClearBulkPending()
	return false
}

// ruleBulkCartIDs claims messages carrying two or more id-addressed cart
// actions ("añade 3 del 310, 2 del 302 y quita 1 del 307").
func (r *Rules) ruleBulkCartIDs(s *model.ConversationState) bool {
	actions := parse.CartCommands(s.UserMessage)
	if len(actions) < 2 {
		return false
	}
	s.PendingActions = actions
	s.NextNode = NodeBulkCartUpdate
	return true
}

// ruleBulkCartNames claims multi-action messages where at least one action
// needs name resolution. Name actions are serialized as "op|qty|hint" so the
// queue survives persistence between turns.
func (r *Rules) ruleBulkCartNames(s *model.ConversationState) bool {
	withIDs, byName := parse.CartCommandsByName(s.UserMessage)
	if len(withIDs)+len(byName) < 2 || len(byName) == 0 {
		return false
	}

	s.PendingActions = withIDs
	s.PendingNameActions = make([]string, 0, len(byName))
	for _, a := range byName {
		s.PendingNameActions = append(s.PendingNameActions, fmt.Sprintf("%s|%d|%s", a.Op, a.Qty, a.Hint))
	}
	s.NextNode = NodeBulkCartUpdate
	return true
}
