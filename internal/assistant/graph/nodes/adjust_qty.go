package nodes

import (
	"context"
	"strconv"

	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/parse"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

// AdjustCartQty sets an absolute quantity for a cart line ("mejor que sea
// 1"). The target product comes from the message hint, else from the last
// cart mutation; several possibilities arm a set-qty disambiguation.
func (d *Deps) AdjustCartQty(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	// 0) Consume a pending set-qty clarification.
	if s.PendingProductOp == model.ProductOpSetQty && len(s.CandidateProducts) > 0 {
		targetQty := s.PendingQty
		if targetQty <= 0 {
			s.AssistantMessage = ux.T(s, "fallback_ok", nil)
			s.ClearProductChoice()
			return s, nil
		}

		productID, ok := catalog.ParseChoice(s.UserMessage, s.CandidateProducts)
		if !ok {
			productID, ok = d.Catalog.PickCandidateByText(s.UserMessage, s.CandidateProducts)
		}
		if !ok {
			s.AssistantMessage = ux.T(s, "pick_number_id_or_name", nil)
			return s, nil
		}

		s.ClearProductChoice()
		return d.applySetQty(s, productID, targetQty)
	}

	// 1) Fresh adjustment.
	targetQty, hint := parse.Adjustment(s.UserMessage)
	if targetQty == 0 {
		s.AssistantMessage = ux.T(s, "fallback_ok", nil)
		return s, nil
	}

	productID := 0
	if hint != "" {
		matches := d.Catalog.FindProductsByName(hint, 5)
		switch {
		case len(matches) == 1:
			productID = matches[0]
		case len(matches) > 1:
			s.ArmProductChoice(model.ProductOpSetQty, matches, targetQty)
			d.askPickOne(s, "adjust_multiple_found", "pick_number_id_or_name", matches)
			return s, nil
		}
		// Zero matches: the hint was filler; fall back to recent context.
	}

	if productID == 0 {
		switch {
		case len(s.LastCartProductIDs) == 1:
			productID = s.LastCartProductIDs[0]
		case len(s.LastCartProductIDs) > 1:
			s.ArmProductChoice(model.ProductOpSetQty, s.LastCartProductIDs, targetQty)
			d.askPickOne(s, "adjust_which_of_these", "pick_number_id_or_name", s.LastCartProductIDs)
			return s, nil
		default:
			s.AssistantMessage = ux.T(s, "need_product_id_or_name", nil)
			return s, nil
		}
	}

	return d.applySetQty(s, productID, targetQty)
}

func (d *Deps) applySetQty(s *model.ConversationState, productID, targetQty int) (*model.ConversationState, error) {
	product, ok := d.Catalog.Get(productID)
	if !ok {
		s.AssistantMessage = ux.T(s, "product_not_found", ux.Params{"product_id": strconv.Itoa(productID)})
		return s, nil
	}

	applied, newQty := d.Cart.SetQty(s, productID, targetQty)
	if !applied {
		s.AssistantMessage = ux.T(s, "qty_update_failed", nil)
		return s, nil
	}

	total := d.Cart.Total(s)
	s.Mode = model.ModeCart
	s.UIProduct = &product
	s.UIProducts = nil
	s.UICartTotal = &total

	s.LastCartProductIDs = []int{productID}
	s.LastCartOp = "set_qty"
	s.LastCartQty = newQty

	s.AssistantMessage = ux.T(s, "qty_set_ok", ux.Params{
		"product_id": strconv.Itoa(product.ID),
		"brand":      product.Brand,
		"name":       product.Name,
		"qty":        strconv.Itoa(newQty),
		"total":      euro(total),
	})
	return s, nil
}
