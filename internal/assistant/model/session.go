package model

import "context"

// SessionStore persists one ConversationState per session id.
//
// Implementations only need last-write-wins semantics per session: turns for
// a single session are serialized by the caller, while different sessions may
// read and write concurrently.
type SessionStore interface {
	// Get retrieves the state for a session. A missing session yields
	// (nil, nil), not an error.
	Get(ctx context.Context, sessionID string) (*ConversationState, error)

	// Set persists the state, overwriting any previous value.
	Set(ctx context.Context, state *ConversationState) error

	// Delete removes the stored state. Deleting an unknown session is a no-op.
	Delete(ctx context.Context, sessionID string) error
}

// TurnOutput is the projection of a processed turn handed to the UI layer.
type TurnOutput struct {
	Reply            string     `json:"reply"`
	Products         []Product  `json:"products"`
	Product          *Product   `json:"product,omitempty"`
	Cart             []CartItem `json:"cart"`
	CartTotal        *float64   `json:"cart_total,omitempty"`
	Mode             string     `json:"mode"`
	ShouldEnd        bool       `json:"should_end"`
	ShowCheckoutForm bool       `json:"show_checkout_form"`
	FormError        string     `json:"form_error,omitempty"`
}

// ProjectTurn builds the UI projection from a finalized state.
func ProjectTurn(s *ConversationState) TurnOutput {
	return TurnOutput{
		Reply:            s.AssistantMessage,
		Products:         s.UIProducts,
		Product:          s.UIProduct,
		Cart:             s.Cart,
		CartTotal:        s.UICartTotal,
		Mode:             string(s.Mode),
		ShouldEnd:        s.ShouldEnd,
		ShowCheckoutForm: s.UIShowCheckoutForm,
		FormError:        s.UIFormError,
	}
}
