package nodes

import (
	"context"
	"strconv"

	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

// ResolveProductChoice consumes the user's answer to a numbered
// disambiguation prompt and completes the deferred operation (add, remove,
// set-qty or detail). A reply matching nothing, or tied between candidates,
// re-asks instead of guessing.
func (d *Deps) ResolveProductChoice(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	candidates := s.CandidateProducts
	op := s.PendingProductOp
	qty := s.PendingQty
	if qty < 1 {
		qty = 1
	}

	if len(candidates) == 0 || op == "" {
		s.AssistantMessage = ux.T(s, "fallback_ok", nil)
		return s, nil
	}

	productID, ok := catalog.ParseChoice(s.UserMessage, candidates)
	if !ok {
		productID, ok = d.Catalog.PickCandidateByText(s.UserMessage, candidates)
	}
	if !ok {
		s.AssistantMessage = ux.T(s, "pick_number_id_or_name", nil)
		return s, nil
	}

	product, found := d.Catalog.Get(productID)
	if !found {
		s.AssistantMessage = ux.T(s, "product_not_found", ux.Params{"product_id": strconv.Itoa(productID)})
		return s, nil
	}

	s.ClearProductChoice()

	switch op {
	case model.ProductOpDetail:
		s.Mode = model.ModeCatalog
		s.SelectedProductID = product.ID
		s.UIProduct = &product
		s.UIProducts = nil
		s.UICartTotal = nil
		s.AssistantMessage = d.renderProductDetail(s, product)
		return s, nil

	case model.ProductOpAdd:
		applied, added := d.Cart.Add(s, productID, qty)
		if !applied || added <= 0 {
			s.AssistantMessage = ux.T(s, "add_no_stock", ux.Params{"product_label": product.Label()})
			return s, nil
		}
		note := ""
		if added < qty {
			note = ux.T(s, "cart_partial_add_note", ux.Params{
				"qty":   strconv.Itoa(qty),
				"added": strconv.Itoa(added),
			})
		}
		d.finishCartMutation(s, product, "add", added)
		s.AssistantMessage = ux.T(s, "add_ok", ux.Params{
			"added":         strconv.Itoa(added),
			"product_label": product.Label(),
			"note":          note,
		})
		return s, nil

	case model.ProductOpRemove:
		applied, removed := d.Cart.Remove(s, productID, qty)
		if !applied || removed <= 0 {
			s.AssistantMessage = ux.T(s, "remove_not_in_cart", ux.Params{"product_id": strconv.Itoa(productID)})
			return s, nil
		}
		note := ""
		if removed < qty {
			note = ux.T(s, "cart_partial_remove_note", ux.Params{
				"qty":     strconv.Itoa(qty),
				"removed": strconv.Itoa(removed),
			})
		}
		d.finishCartMutation(s, product, "remove", removed)
		s.AssistantMessage = ux.T(s, "remove_ok", ux.Params{
			"removed":       strconv.Itoa(removed),
			"product_label": product.Label(),
			"note":          note,
		})
		return s, nil

	case model.ProductOpSetQty:
		return d.applySetQty(s, productID, qty)
	}

	s.AssistantMessage = ux.T(s, "fallback_ok", nil)
	return s, nil
}

// finishCartMutation updates mode, UI projection and follow-up memory after
// a successful add/remove.
func (d *Deps) finishCartMutation(s *model.ConversationState, product model.Product, op string, appliedQty int) {
	total := d.Cart.Total(s)
	s.Mode = model.ModeCart
	s.UIProduct = &product
	s.UIProducts = nil
	s.UICartTotal = &total
	s.LastCartProductIDs = []int{product.ID}
	s.LastCartOp = op
	s.LastCartQty = appliedQty
	s.SelectedProductID = product.ID
}
