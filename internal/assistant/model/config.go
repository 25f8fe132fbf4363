package model

// ================ Config ================

// SessionConfig controls how session state is kept by the store.
type SessionConfig struct {
	TTL string `envconfig:"SESSION_TTL" default:"30m"`
}

// RouterModelConfig configures the optional LLM intent router. The router is
// consulted only when no deterministic rule claims a turn, so the engine is
// fully functional with Enabled=false.
type RouterModelConfig struct {
	Enabled       bool    `envconfig:"LLM_ROUTER_ENABLED" default:"false"`
	Model         string  `envconfig:"LLM_ROUTER_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens     int     `envconfig:"LLM_ROUTER_MAX_TOKENS" default:"1000"`
	Temperature   float32 `envconfig:"LLM_ROUTER_TEMPERATURE" default:"0.1"`
	MinConfidence float64 `envconfig:"LLM_MIN_CONFIDENCE" default:"0.6"`
	TimeoutSec    int     `envconfig:"LLM_ROUTER_TIMEOUT_SECONDS" default:"8"`
}

// EngineConfig bundles behavior toggles for the chat engine.
type EngineConfig struct {
	DefaultLanguage string `envconfig:"DEFAULT_LANGUAGE" default:"es"`
}
