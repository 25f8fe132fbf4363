package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
	logx "github.com/cartchat-core-poc/server/pkg/logger"
)

// GeminiRouter classifies turns with a Gemini chat model. All failures
// (timeout, transport, malformed output) degrade to UnknownResult.
type GeminiRouter struct {
	chatModel *gemini.ChatModel
	timeout   time.Duration
}

// GeminiRouterConfig carries what NewGeminiRouter needs to build the model.
type GeminiRouterConfig struct {
	APIKey string
	Router model.RouterModelConfig
}

func NewGeminiRouter(ctx context.Context, cfg GeminiRouterConfig) (*GeminiRouter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Router.Model,
		Temperature: &cfg.Router.Temperature,
		MaxTokens:   &cfg.Router.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating router model")
		return nil, fmt.Errorf("error creating router model: %w", err)
	}

	timeout := time.Duration(cfg.Router.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	return &GeminiRouter{chatModel: chatModel, timeout: timeout}, nil
}

// Interpret sends the turn context to the model and decodes the JSON
// interpretation. The context payload stays deliberately small.
func (g *GeminiRouter) Interpret(ctx context.Context, state *model.ConversationState) (model.RouterResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]any{
		"mode":                state.Mode,
		"user_message":        state.UserMessage,
		"selected_product_id": state.SelectedProductID,
		"cart_size":           len(state.Cart),
		"shipping_complete":   state.Shipping.IsComplete(),
		"checkout_form_open":  state.UIShowCheckoutForm,
	})
	if err != nil {
		return model.UnknownResult(), err
	}

	out, err := g.chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(routerSystemPrompt),
		schema.UserMessage(string(payload)),
	})
	if err != nil {
		logx.Warn().Err(err).Msg("Router model call failed; degrading to unknown intent")
		return model.UnknownResult(), err
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return model.UnknownResult(), nil
	}

	result, err := decodeRouterResult(out.Content)
	if err != nil {
		logx.Warn().Err(err).Msg("Router output unusable; degrading to unknown intent")
		return model.UnknownResult(), err
	}
	return result, nil
}

var jsonObjectRE = regexp.MustCompile(`(?s)\{.*\}`)

// decodeRouterResult extracts the JSON object from the model output even
// when text or code fences surround it.
func decodeRouterResult(content string) (model.RouterResult, error) {
	text := strings.TrimSpace(content)
	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		m := jsonObjectRE.FindString(text)
		if m == "" {
			return model.UnknownResult(), fmt.Errorf("no JSON object in router output")
		}
		text = m
	}

	var result model.RouterResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return model.UnknownResult(), fmt.Errorf("decode router output: %w", err)
	}
	if result.Intent == "" {
		result.Intent = model.IntentUnknown
	}
	return result, nil
}
