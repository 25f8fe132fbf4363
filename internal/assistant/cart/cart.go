// Package cart implements the stock-aware cart mutation primitives.
//
// Every operation reports the quantity actually applied, which may be lower
// than requested due to stock or cart limits. Callers surface partial
// application to the user instead of silently truncating.
package cart

import (
	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

// Ops binds the cart primitives to a catalog for stock and price lookups.
type Ops struct {
	Catalog *catalog.Service
}

// Add increments (or inserts) a cart line, clamped so the line never exceeds
// stock: applied = min(qty, stock - currentQtyInCart). Returns (false, 0)
// when nothing could be added or the product is unknown.
func (o Ops) Add(st *model.ConversationState, productID, qty int) (bool, int) {
	if qty < 1 {
		return false, 0
	}
	product, ok := o.Catalog.Get(productID)
	if !ok {
		return false, 0
	}

	current := st.CartQty(productID)
	canAdd := product.Stock - current
	if canAdd < 0 {
		canAdd = 0
	}
	added := min(qty, canAdd)
	if added <= 0 {
		return false, 0
	}

	for i := range st.Cart {
		if st.Cart[i].ProductID == productID {
			st.Cart[i].Qty += added
			return true, added
		}
	}
	st.Cart = append(st.Cart, model.CartItem{ProductID: productID, Qty: added})
	return true, added
}

// Remove decrements a cart line by removed = min(qty, currentQtyInCart),
// deleting the line when it reaches zero. Returns (false, 0) when the product
// is not in the cart.
func (o Ops) Remove(st *model.ConversationState, productID, qty int) (bool, int) {
	if qty < 1 {
		return false, 0
	}
	for i := range st.Cart {
		if st.Cart[i].ProductID != productID {
			continue
		}
		removed := min(qty, st.Cart[i].Qty)
		st.Cart[i].Qty -= removed
		if st.Cart[i].Qty == 0 {
			st.Cart = append(st.Cart[:i], st.Cart[i+1:]...)
		}
		return true, removed
	}
	return false, 0
}

// SetQty sets a cart line to an absolute quantity. qty <= 0 deletes the line
// (success, 0); otherwise the quantity is clamped to stock and the line is
// updated or inserted.
func (o Ops) SetQty(st *model.ConversationState, productID, qty int) (bool, int) {
	if _, ok := o.Catalog.Get(productID); !ok {
		return false, 0
	}

	if qty <= 0 {
		for i := range st.Cart {
			if st.Cart[i].ProductID == productID {
				st.Cart = append(st.Cart[:i], st.Cart[i+1:]...)
				break
			}
		}
		return true, 0
	}

	product, _ := o.Catalog.Get(productID)
	newQty := min(qty, product.Stock)

	for i := range st.Cart {
		if st.Cart[i].ProductID == productID {
			st.Cart[i].Qty = newQty
			return true, newQty
		}
	}
	st.Cart = append(st.Cart, model.CartItem{ProductID: productID, Qty: newQty})
	return true, newQty
}

// Total recomputes the cart total from catalog prices on every call; a cached
// total could go stale against the catalog.
func (o Ops) Total(st *model.ConversationState) float64 {
	total := 0.0
	for _, item := range st.Cart {
		if p, ok := o.Catalog.Get(item.ProductID); ok {
			total += p.Price * float64(item.Qty)
		}
	}
	return total
}
