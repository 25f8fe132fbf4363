// Package engine exposes the conversational API: start a session, process a
// chat turn, submit the checkout form, reset. It owns session persistence and
// the finalize pass; everything in between is the graph's job.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/cartchat-core-poc/server/internal/assistant/graph"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/ux"
	logx "github.com/cartchat-core-poc/server/pkg/logger"
)

// ChatEngine drives one conversation turn at a time. Turns for a single
// session must be serialized by the caller; sessions are independent.
type ChatEngine struct {
	store  model.SessionStore
	runner graph.Runner
	cfg    model.EngineConfig
}

func NewChatEngine(store model.SessionStore, runner graph.Runner, cfg model.EngineConfig) *ChatEngine {
	return &ChatEngine{store: store, runner: runner, cfg: cfg}
}

// StartSession returns the existing state for the session or creates a fresh
// one with a localized welcome.
func (e *ChatEngine) StartSession(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	state, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state != nil {
		return state, nil
	}

	state = model.NewConversationState(sessionID)
	state.PreferredLanguage = e.cfg.DefaultLanguage
	state.AssistantMessage = ux.T(state, "welcome", nil)

	if err := e.store.Set(ctx, state); err != nil {
		return nil, err
	}
	logx.Debug().Str("session_id", sessionID).Msg("Session started")
	return state, nil
}

var (
	enGreetings = map[string]bool{"hi": true, "hello": true, "hey": true}
	esGreetings = map[string]bool{
		"hola": true, "buenas": true, "buenos dias": true, "buenos días": true,
		"buenas tardes": true, "buenas noches": true,
	}
)

// ProcessTurn runs one user message through the graph and returns the UI
// projection of the resulting state.
func (e *ChatEngine) ProcessTurn(ctx context.Context, sessionID, message string) (model.TurnOutput, error) {
	state, err := e.StartSession(ctx, sessionID)
	if err != nil {
		return model.TurnOutput{}, err
	}

	if state.Ended() {
		state.AssistantMessage = ux.T(state, "ended", nil)
		state.UIShowCheckoutForm = false
		state.UIFormError = ""
		if err := e.store.Set(ctx, state); err != nil {
			return model.TurnOutput{}, err
		}
		return model.ProjectTurn(state), nil
	}

	state.UserMessage = strings.TrimSpace(message)

	// Bare greetings double as a language switch and never reach the graph.
	if lang, ok := greetingLanguage(state.UserMessage); ok {
		state.ResetTurnOutputs()
		state.PreferredLanguage = lang
		state.AssistantMessage = ux.T(state, "welcome", nil)
		if err := e.store.Set(ctx, state); err != nil {
			return model.TurnOutput{}, err
		}
		return model.ProjectTurn(state), nil
	}

	out, err := e.runner.Invoke(ctx, state)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("Turn processing failed")
		return model.TurnOutput{}, fmt.Errorf("process turn: %w", err)
	}
	state = out

	Finalize(state)

	if err := e.store.Set(ctx, state); err != nil {
		return model.TurnOutput{}, err
	}
	return model.ProjectTurn(state), nil
}

// SubmitCheckoutForm validates the shipping form and, when complete, moves
// the session to the review step.
func (e *ChatEngine) SubmitCheckoutForm(ctx context.Context, sessionID string, form model.ShippingInfo) (model.TurnOutput, error) {
	state, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return model.TurnOutput{}, err
	}
	if state == nil {
		return model.TurnOutput{}, fmt.Errorf("session %s not found", sessionID)
	}

	if state.Ended() {
		state.AssistantMessage = ux.T(state, "ended", nil)
		state.UIShowCheckoutForm = false
		state.UIFormError = ""
		if err := e.store.Set(ctx, state); err != nil {
			return model.TurnOutput{}, err
		}
		return model.ProjectTurn(state), nil
	}

	form = trimShipping(form)
	state.ResetTurnOutputs()
	state.UIFormError = ""

	switch {
	case !form.IsComplete():
		state.UIFormError = ux.T(state, "checkout_form_missing_fields_error", nil)
		state.AssistantMessage = ux.T(state, "checkout_form_missing_fields_msg", nil)
		state.UIShowCheckoutForm = true

	case !digitsOnly(form.PostalCode):
		state.UIFormError = ux.T(state, "checkout_form_postal_numeric_error", nil)
		state.AssistantMessage = ux.T(state, "checkout_form_postal_numeric_msg", nil)
		state.UIShowCheckoutForm = true

	case !digitsOnly(form.Phone):
		state.UIFormError = ux.T(state, "checkout_form_phone_numeric_error", nil)
		state.AssistantMessage = ux.T(state, "checkout_form_phone_numeric_msg", nil)
		state.UIShowCheckoutForm = true

	default:
		state.Shipping = form
		state.Mode = model.ModeCheckoutReview
		state.UIShowCheckoutForm = false
		state.AssistantMessage = ux.T(state, "checkout_review_prompt", ux.Params{
			"full_name":     form.FullName,
			"address_line1": form.AddressLine1,
			"city":          form.City,
			"postal_code":   form.PostalCode,
			"phone":         form.Phone,
		})
	}

	Finalize(state)

	if err := e.store.Set(ctx, state); err != nil {
		return model.TurnOutput{}, err
	}
	return model.ProjectTurn(state), nil
}

// Reset discards the session state entirely.
func (e *ChatEngine) Reset(ctx context.Context, sessionID string) error {
	return e.store.Delete(ctx, sessionID)
}

func greetingLanguage(message string) (string, bool) {
	text := strings.ToLower(strings.TrimSpace(message))
	text = strings.TrimRight(text, "!.¡")
	if enGreetings[text] {
		return "en", true
	}
	if esGreetings[text] {
		return "es", true
	}
	return "", false
}

func trimShipping(form model.ShippingInfo) model.ShippingInfo {
	return model.ShippingInfo{
		FullName:     strings.TrimSpace(form.FullName),
		AddressLine1: strings.TrimSpace(form.AddressLine1),
		City:         strings.TrimSpace(form.City),
		PostalCode:   strings.TrimSpace(form.PostalCode),
		Phone:        strings.TrimSpace(form.Phone),
	}
}

// digitsOnly ignores inner spaces so "28 001" style input still validates.
func digitsOnly(v string) bool {
	v = strings.ReplaceAll(v, " ", "")
	if v == "" {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
