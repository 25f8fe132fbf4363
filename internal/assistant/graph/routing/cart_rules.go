package routing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/parse"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

var removeVerbs = []string{
	"quitame", "quítame", "quita", "quitar",
	"remove", "delete", "saca", "borra", "elimina",
}

var implicitAddVerbs = []string{
	"añade", "anade", "añadir", "agrega", "mete", "pon", "add", "put", "take",
}

var viewCartKeywords = []string{
	"carrito", "ver carrito", "muéstrame el carrito", "muestrame el carrito",
	"cart", "show cart", "show me the cart", "view cart", "que llevo en el carrito",
}

var (
	qtyOneTwoDigitRE = regexp.MustCompile(`\b\d{1,2}\b`)
	anyNumberRE      = regexp.MustCompile(`\b(\d+)\b`)
)

// ruleAdjustQty routes quantity adjustments ("mejor que sea 1", "make it 2")
// to the dedicated handler.
func (r *Rules) ruleAdjustQty(s *model.ConversationState) bool {
	if qty, _ := parse.Adjustment(s.UserMessage); qty > 0 {
		s.NextNode = NodeAdjustCartQty
		return true
	}
	return false
}

// ruleSingleCartCommand handles a message carrying exactly one explicit cart
// action. A remove against a multi-product cart that names no in-cart id
// must not guess: it opens a disambiguation prompt listing the cart instead
// of routing to removal. The same applies to remove phrasings that carry
// only a quantity.
func (r *Rules) ruleSingleCartCommand(s *model.ConversationState) bool {
	text := msgLower(s)
	actions := parse.CartCommands(s.UserMessage)

	if len(actions) == 1 {
		a := actions[0]

		if a.Op == model.CartOpRemove && len(s.Cart) > 1 && !mentionsAnyCartID(text, s) {
			r.askWhichToRemove(s, a.Qty)
			return true
		}

		s.SelectedProductID = a.ProductID
		s.PendingQty = a.Qty
		if a.Op == model.CartOpAdd {
			s.NextNode = NodeAddToCart
		} else {
			s.NextNode = NodeRemoveFromCart
		}
		return true
	}

	// Remove-like command with a quantity, leaning on the active product
	// context.
	if s.SelectedProductID != 0 && containsAny(text, removeVerbs) {
		if m := anyNumberRE.FindStringSubmatch(text); m != nil {
			qty, _ := strconv.Atoi(m[1])

			if len(s.Cart) == 1 {
				s.PendingQty = qty
				s.SelectedProductID = s.Cart[0].ProductID
				s.NextNode = NodeRemoveFromCart
				return true
			}

			candidates := s.CartProductIDs()
			if len(candidates) == 1 {
				s.PendingQty = qty
				s.SelectedProductID = candidates[0]
				s.NextNode = NodeRemoveFromCart
				return true
			}

			r.askWhichToRemove(s, qty)
			return true
		}
	}

	// Quantity-only remove ("quita 2") against a multi-product cart: ask,
	// never guess. 3-digit numbers are product ids, not quantities.
	if containsAny(text, removeVerbs) &&
		qtyOneTwoDigitRE.MatchString(text) && !threeDigitRE.MatchString(text) {
		if cartIDs := s.CartProductIDs(); len(cartIDs) > 1 {
			qty := 1
			if m := qtyOneTwoDigitRE.FindString(text); m != "" {
				qty, _ = strconv.Atoi(m)
			}
			r.askWhichToRemove(s, qty)
			return true
		}
	}

	return false
}

// askWhichToRemove arms a remove disambiguation over the cart contents and
// builds the numbered prompt. The turn ends here; no node runs.
func (r *Rules) askWhichToRemove(s *model.ConversationState, qty int) {
	if qty < 1 {
		qty = 1
	}
	cartIDs := s.CartProductIDs()
	s.ArmProductChoice(model.ProductOpRemove, cartIDs, qty)

	lines := []string{ux.T(s, "multiple_matches_which_remove", nil)}
	for i, pid := range cartIDs {
		if p, ok := r.Catalog.Get(pid); ok {
			lines = append(lines, fmt.Sprintf("%d) %s", i+1, p.Label()))
		}
	}
	lines = append(lines, ux.T(s, "reply_number_id", nil))

	s.AssistantMessage = strings.Join(lines, "\n")
	s.NextNode = ""
}

// ruleImplicitCartOp handles elliptical adds ("añade 2") that lean on the
// active product context. Passes when no context exists.
func (r *Rules) ruleImplicitCartOp(s *model.ConversationState) bool {
	text := msgLower(s)
	if text == "" || !containsAny(text, implicitAddVerbs) {
		return false
	}

	qty := parse.QtyOnly(s.UserMessage)
	if qty == 0 {
		qty = 1
	}

	switch {
	case s.SelectedProductID != 0:
	case len(s.LastCartProductIDs) == 1:
		s.SelectedProductID = s.LastCartProductIDs[0]
	default:
		return false
	}

	s.PendingQty = qty
	s.NextNode = NodeAddToCart
	return true
}

// ruleViewCart routes cart view requests.
func (r *Rules) ruleViewCart(s *model.ConversationState) bool {
	if containsAny(msgLower(s), viewCartKeywords) {
		s.NextNode = NodeViewCart
		return true
	}
	return false
}

// ruleCartCommandsAny is the late fallback for cart commands no earlier rule
// claimed: a single parsed action routes directly, several queue a bulk
// update, and verb-only messages without a 3-digit id go to the cart nodes
// for name resolution.
func (r *Rules) ruleCartCommandsAny(s *model.ConversationState) bool {
	actions := parse.CartCommands(s.UserMessage)

	switch {
	case len(actions) == 1:
		a := actions[0]
		s.SelectedProductID = a.ProductID
		s.PendingQty = a.Qty
		if a.Op == model.CartOpAdd {
			s.NextNode = NodeAddToCart
		} else {
			s.NextNode = NodeRemoveFromCart
		}
		return true
	case len(actions) > 1:
		s.PendingActions = actions
		s.NextNode = NodeBulkCartUpdate
		return true
	}

	text := msgLower(s)
	if text == "" || threeDigitRE.MatchString(text) {
		return false
	}
	switch parse.DetectCartOp(text) {
	case model.CartOpAdd:
		s.NextNode = NodeAddToCart
		return true
	case model.CartOpRemove:
		s.NextNode = NodeRemoveFromCart
		return true
	}
	return false
}

// ruleOutOfScope is the terminal rule; it always claims, so every turn
// produces a reply.
func (r *Rules) ruleOutOfScope(s *model.ConversationState) bool {
	s.AssistantMessage = ux.T(s, "out_of_scope", nil)
	s.NextNode = NodeEcho
	return true
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func mentionsAnyCartID(text string, s *model.ConversationState) bool {
	for _, item := range s.Cart {
		if regexp.MustCompile(`\b` + strconv.Itoa(item.ProductID) + `\b`).MatchString(text) {
			return true
		}
	}
	return false
}
