package nodes

import (
	"context"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
)

var yesWords = map[string]bool{
	"yes": true, "y": true, "sure": true, "ok": true, "okay": true,
	"continue": true, "confirm": true,
	"sí": true, "si": true, "s": true, "vale": true, "venga": true,
	"continuar": true, "confirmar": true,
}

var noWords = map[string]bool{
	"no": true, "n": true, "cancel": true, "stop": true,
	"cancela": true, "cancelar": true, "parar": true,
}

// CheckoutConfirm opens the checkout flow, guarded on a non-empty cart.
func (d *Deps) CheckoutConfirm(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	if len(s.Cart) == 0 {
		s.AssistantMessage = ux.T(s, "cart_empty", nil)
		return s, nil
	}
	s.Mode = model.ModeCheckoutConfirm
	s.AssistantMessage = ux.T(s, "checkout_confirm", nil)
	return s, nil
}

// HandleCheckoutConfirmation consumes the yes/no before the shipping form.
// Yes opens the form and moves to shipping collection; no returns to the
// cart; anything else re-asks.
func (d *Deps) HandleCheckoutConfirmation(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	answer := strings.ToLower(strings.TrimSpace(s.UserMessage))

	switch {
	case yesWords[answer]:
		s.UIFormError = ""
		s.UIShowCheckoutForm = true
		s.Mode = model.ModeCollectShipping
		s.AssistantMessage = ux.T(s, "checkout_form_open", nil)
	case noWords[answer]:
		s.Mode = model.ModeCart
		s.UIShowCheckoutForm = false
		s.UIFormError = ""
		s.AssistantMessage = ux.T(s, "checkout_cancelled", nil)
	default:
		s.AssistantMessage = ux.T(s, "checkout_ask_yesno", nil)
	}
	return s, nil
}

// HandleCheckoutReview consumes the final yes/no. Yes "places" the order:
// cart and shipping are cleared and the session returns to browsing. No
// drops the shipping data and goes back to the cart.
func (d *Deps) HandleCheckoutReview(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	answer := strings.ToLower(strings.TrimSpace(s.UserMessage))

	switch {
	case yesWords[answer]:
		s.ShouldEnd = false
		s.Mode = model.ModeCatalog
		s.Cart = nil
		s.SelectedProductID = 0
		s.Shipping.Clear()

		zero := 0.0
		s.UIShowCheckoutForm = false
		s.UIFormError = ""
		s.UICartTotal = &zero
		s.UIProduct = nil
		s.UIProducts = nil

		s.AssistantMessage = ux.T(s, "order_confirmed", nil)
	case noWords[answer]:
		s.Shipping.Clear()
		s.Mode = model.ModeCart
		s.UIShowCheckoutForm = false
		s.UIFormError = ""
		s.AssistantMessage = ux.T(s, "checkout_review_cancelled", nil)
	default:
		s.AssistantMessage = ux.T(s, "checkout_ask_yesno", nil)
	}
	return s, nil
}

// CollectShipping re-validates shipping data already on the state (the form
// posts through the engine, not through chat). Missing fields re-open the
// form; a complete set moves to review.
func (d *Deps) CollectShipping(ctx context.Context, s *model.ConversationState) (*model.ConversationState, error) {
	s.UIShowCheckoutForm = false
	s.UIFormError = ""

	if !s.Shipping.IsComplete() {
		s.Mode = model.ModeCollectShipping
		s.UIShowCheckoutForm = true
		s.UIFormError = ux.T(s, "checkout_form_missing_fields_error", nil)
		s.AssistantMessage = ux.T(s, "checkout_form_missing_fields_msg", nil)
		return s, nil
	}

	s.Mode = model.ModeCheckoutReview
	s.AssistantMessage = ux.T(s, "checkout_review_prompt", ux.Params{
		"full_name":     s.Shipping.FullName,
		"address_line1": s.Shipping.AddressLine1,
		"city":          s.Shipping.City,
		"postal_code":   s.Shipping.PostalCode,
		"phone":         s.Shipping.Phone,
	})
	return s, nil
}
