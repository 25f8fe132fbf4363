package nodes

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/parse"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

// AddToCart adds a product, resolving it from an explicit id, a name search,
// or the active product context, in that order.
func (d *Deps) AddToCart(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	qty, productID := parse.QtyAndProductID(s.UserMessage)
	if qty == 0 {
		qty = parse.QtyOnly(s.UserMessage)
	}
	if qty == 0 {
		qty = s.PendingQty
	}
	if qty == 0 {
		qty = 1
	}

	if productID == 0 {
		matches := d.Catalog.FindProductsByName(s.UserMessage, 5)
		switch {
		case len(matches) == 1:
			productID = matches[0]
			s.SelectedProductID = productID
		case len(matches) > 1:
			s.ArmProductChoice(model.ProductOpAdd, matches, qty)
			d.askPickOne(s, "multiple_matches_which_add", "reply_number_id_name", matches)
			return s, nil
		default:
			productID = s.SelectedProductID
		}
	}

	if productID == 0 {
		s.AssistantMessage = ux.T(s, "need_product_id_add", nil)
		return s, nil
	}

	product, ok := d.Catalog.Get(productID)
	if !ok {
		s.AssistantMessage = ux.T(s, "product_not_found", ux.Params{"product_id": strconv.Itoa(productID)})
		return s, nil
	}

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

	s.Mode = model.ModeCart
	s.AssistantMessage = ux.T(s, "add_ok", ux.Params{
		"added":         strconv.Itoa(added),
		"product_label": product.Label(),
		"note":          note,
	})

	total := d.Cart.Total(s)
	s.UIProduct = &product
	s.UIProducts = nil
	s.UICartTotal = &total

	s.LastCartProductIDs = []int{productID}
	s.LastCartOp = "add"
	s.LastCartQty = added
	s.PendingQty = 0
	return s, nil
}

// RemoveFromCart mirrors AddToCart's resolution strategy for removals.
func (d *Deps) RemoveFromCart(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	qty, productID := parse.QtyAndProductID(s.UserMessage)
	if productID == 0 {
		productID = s.SelectedProductID
	}
	if productID == 0 && qty == 0 {
		qty = parse.QtyOnly(s.UserMessage)
	}
	if qty == 0 {
		qty = s.PendingQty
	}
	if qty == 0 {
		qty = 1
	}

	if productID == 0 {
		matches := d.Catalog.FindProductsByName(s.UserMessage, 5)
		switch {
		case len(matches) == 1:
			productID = matches[0]
		case len(matches) > 1:
			s.ArmProductChoice(model.ProductOpRemove, matches, qty)
			d.askPickOne(s, "multiple_matches_which_remove", "reply_number_id", matches)
			return s, nil
		default:
			s.AssistantMessage = ux.T(s, "need_product_id_remove", nil)
			return s, nil
		}
	}

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

	s.Mode = model.ModeCart
	label := strconv.Itoa(productID)
	var uiProduct *model.Product
	if product, ok := d.Catalog.Get(productID); ok {
		label = product.Label()
		uiProduct = &product
	}

	s.AssistantMessage = ux.T(s, "remove_ok", ux.Params{
		"removed":       strconv.Itoa(removed),
		"product_label": label,
		"note":          note,
	})

	total := d.Cart.Total(s)
	s.UIProduct = uiProduct
	s.UIProducts = nil
	s.UICartTotal = &total

	s.LastCartProductIDs = []int{productID}
	s.LastCartOp = "remove"
	s.LastCartQty = removed
	s.PendingQty = 0
	return s, nil
}

// ViewCart renders the cart contents with per-line subtotals and the total.
func (d *Deps) ViewCart(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	if len(s.Cart) == 0 {
		s.AssistantMessage = ux.T(s, "cart_empty", nil)
		return s, nil
	}

	lines := []string{ux.T(s, "cart_header", nil)}
	for _, item := range s.Cart {
		p, ok := d.Catalog.Get(item.ProductID)
		if !ok {
			continue
		}
		subtotal := p.Price * float64(item.Qty)
		lines = append(lines, fmt.Sprintf("- %s — €%s x %d = €%s", p.Label(), euro(p.Price), item.Qty, euro(subtotal)))
	}

	total := d.Cart.Total(s)
	lines = append(lines, "", ux.T(s, "cart_total", ux.Params{"total": euro(total)}))

	s.AssistantMessage = strings.Join(lines, "\n")
	s.Mode = model.ModeCart
	s.UIProduct = nil
	s.UIProducts = nil
	s.UICartTotal = &total
	return s, nil
}
