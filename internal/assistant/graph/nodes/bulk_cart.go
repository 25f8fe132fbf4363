package nodes

import (
	"context"
	"strconv"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

// BulkCartUpdate processes a batch of cart actions that may span several
// turns while name hints get resolved.
//
// Flow:
//  1. consume a pending disambiguation reply, appending the deferred action;
//  2. drain the name-action queue FIFO: one unresolved hint pauses the
//     batch and asks, zero matches abort it entirely;
//  3. apply all resolved actions in order against a shadow of the original
//     cart quantities, reporting each action independently.
//
// Every exit that finishes or aborts the batch clears all pending bulk
// state; only the ask-and-wait exits keep it.
func (d *Deps) BulkCartUpdate(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	actions := s.PendingActions

	// 1) A clarification armed on a previous turn.
	if s.PendingBulkOp != "" && len(s.CandidateProducts) > 0 {
		productID, ok := catalog.ParseChoice(s.UserMessage, s.CandidateProducts)
		if !ok {
			s.AssistantMessage = ux.T(s, "bulk_reply_number_id", nil)
			return s, nil
		}

		qty := s.PendingBulkQty
		if qty < 1 {
			qty = 1
		}
		actions = append(actions, model.CartAction{Op: s.PendingBulkOp, ProductID: productID, Qty: qty})

		s.CandidateProducts = nil
		s.PendingBulkOp = ""
		s.PendingBulkQty = 0
	}

	// 2) Drain queued name actions.
	for len(s.PendingNameActions) > 0 {
		packed := s.PendingNameActions[0]
		s.PendingNameActions = s.PendingNameActions[1:]

		parts := strings.SplitN(packed, "|", 3)
		if len(parts) != 3 {
			continue
		}
		op := model.CartOp(parts[0])
		qty, err := strconv.Atoi(parts[1])
		if err != nil || qty < 1 {
			qty = 1
		}
		hint := parts[2]

		matches := d.Catalog.FindProductsByName(hint, 5)
		switch {
		case len(matches) == 1:
			actions = append(actions, model.CartAction{Op: op, ProductID: matches[0], Qty: qty})

		case len(matches) > 1:
			// Pause the batch: keep resolved actions and the unresolved
			// remainder of the queue, ask, resume next turn.
			s.PendingActions = actions
			s.ArmBulkChoice(op, matches, qty)
			d.askPickOne(s, "multiple_matches_which_add", "reply_number_id", matches)
			return s, nil

		default:
			// An unresolvable hint aborts the whole batch.
			s.AssistantMessage = ux.T(s, "bulk_none", nil)
			s.ClearBulkPending()
			return s, nil
		}
	}

	if len(actions) == 0 {
		s.AssistantMessage = ux.T(s, "bulk_none", nil)
		s.ClearBulkPending()
		return s, nil
	}

	// 3) Apply in order against a shadow of the original quantities, so a
	// remove is judged against what the user had before this batch.
	shadow := make(map[int]int, len(s.Cart))
	for _, item := range s.Cart {
		shadow[item.ProductID] = item.Qty
	}

	var lines []string
	var affected []int

	for _, a := range actions {
		product, ok := d.Catalog.Get(a.ProductID)
		if !ok {
			lines = append(lines, ux.T(s, "bulk_not_found", ux.Params{"product_id": strconv.Itoa(a.ProductID)}))
			continue
		}
		label := product.Label()

		switch a.Op {
		case model.CartOpAdd:
			applied, added := d.Cart.Add(s, a.ProductID, a.Qty)
			if !applied || added <= 0 {
				lines = append(lines, ux.T(s, "bulk_no_stock", ux.Params{"product_label": label}))
				continue
			}
			note := ""
			if added < a.Qty {
				note = ux.T(s, "bulk_partial_add_note", ux.Params{
					"qty":   strconv.Itoa(a.Qty),
					"added": strconv.Itoa(added),
				})
			}
			lines = append(lines, ux.T(s, "bulk_added", ux.Params{
				"added":         strconv.Itoa(added),
				"product_label": label,
				"note":          note,
			}))
			// The shadow deliberately ignores this add: removes later in the
			// batch are judged against the batch-start quantities.
			affected = append(affected, a.ProductID)

		case model.CartOpRemove:
			current := shadow[a.ProductID]
			if current <= 0 {
				lines = append(lines, ux.T(s, "bulk_not_in_cart", ux.Params{"product_label": label}))
				continue
			}
			if a.Qty > current {
				lines = append(lines, ux.T(s, "bulk_cannot_remove", ux.Params{
					"qty":           strconv.Itoa(a.Qty),
					"product_label": label,
					"current_qty":   strconv.Itoa(current),
				}))
				continue
			}
			applied, removed := d.Cart.Remove(s, a.ProductID, a.Qty)
			if !applied || removed <= 0 {
				lines = append(lines, ux.T(s, "bulk_remove_failed", ux.Params{"product_label": label}))
				continue
			}
			lines = append(lines, ux.T(s, "bulk_removed", ux.Params{
				"removed":       strconv.Itoa(removed),
				"product_label": label,
			}))
			if remaining := current - removed; remaining > 0 {
				shadow[a.ProductID] = remaining
			} else {
				delete(shadow, a.ProductID)
			}
			affected = append(affected, a.ProductID)

		default:
			lines = append(lines, ux.T(s, "bulk_not_found", ux.Params{"product_id": strconv.Itoa(a.ProductID)}))
		}
	}

	total := d.Cart.Total(s)
	lines = append(lines, "", ux.T(s, "bulk_total", ux.Params{"total": euro(total)}))

	s.Mode = model.ModeCart
	s.AssistantMessage = strings.Join(lines, "\n")
	s.UIProduct = nil
	s.UIProducts = nil
	s.UICartTotal = &total

	if len(affected) > 0 {
		s.LastCartProductIDs = dedupInts(affected)
		s.SelectedProductID = s.LastCartProductIDs[len(s.LastCartProductIDs)-1]
	}

	s.ClearBulkPending()
	return s, nil
}

func dedupInts(in []int) []int {
	out := make([]int, 0, len(in))
	seen := make(map[int]bool, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
