package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/engine"
	"github.com/cartchat-core-poc/server/internal/assistant/graph"
	"github.com/cartchat-core-poc/server/internal/assistant/llm"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
	"github.com/cartchat-core-poc/server/internal/assistant/repo"
	"github.com/cartchat-core-poc/server/internal/core"
	logx "github.com/cartchat-core-poc/server/pkg/logger"
	pkgredis "github.com/cartchat-core-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the assistant, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider (only needed when the router is enabled)
	APIKey string `envconfig:"GEMINI_API_KEY"`

	// Assistant configs
	Session model.SessionConfig
	Router  model.RouterModelConfig
	Engine  model.EngineConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	logx.Info().Msg("Connected to Redis successfully")

	ttl, err := time.ParseDuration(envCfg.Session.TTL)
	if err != nil {
		log.Fatalf("Invalid SESSION_TTL '%s': %v", envCfg.Session.TTL, err)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	var router llm.Interpreter = llm.Disabled{}
	if envCfg.Router.Enabled {
		if envCfg.APIKey == "" {
			log.Fatalf("LLM router enabled but GEMINI_API_KEY is not set")
		}
		router, err = llm.NewGeminiRouter(ctx, llm.GeminiRouterConfig{
			APIKey: envCfg.APIKey,
			Router: envCfg.Router,
		})
		if err != nil {
			log.Fatalf("Failed to build router model: %v", err)
		}
	}

	runner, err := graph.BuildTurnGraph(ctx, graph.Config{
		Catalog:      cat,
		Router:       router,
		RouterConfig: envCfg.Router,
	})
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	eng := engine.NewChatEngine(
		repo.NewRedisSessionStore(rdb, ttl),
		runner,
		envCfg.Engine,
	)

	sessionID := fmt.Sprintf("demo-%d", time.Now().Unix())

	turns := []struct {
		description string
		message     string
	}{
		{"Catalog listing", "muéstrame el catálogo"},
		{"Recommendation with constraints", "recomiéndame algo amaderado para hombre por menos de 100 euros"},
		{"Add by id with quantity", "añade 2 del 301"},
		{"Bulk cart update", "añade 3 del 310, 2 del 302 y quita 1 del 301"},
		{"View cart", "ver carrito"},
		{"Checkout", "finalizar compra"},
		{"Confirm checkout", "sí"},
	}

	if _, err := eng.StartSession(ctx, sessionID); err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	for i, turn := range turns {
		fmt.Printf("\nTurn %d: %s\n", i+1, turn.description)
		fmt.Printf("User: %q\n", turn.message)

		out, err := eng.ProcessTurn(ctx, sessionID, turn.message)
		if err != nil {
			log.Fatalf("Failed to process turn %d: %v", i+1, err)
		}

		fmt.Printf("Assistant: %s\n", out.Reply)
		fmt.Printf("Mode: %s  Cart items: %d\n", out.Mode, len(out.Cart))
	}

	// The confirm turn opened the shipping form; complete the purchase.
	out, err := eng.SubmitCheckoutForm(ctx, sessionID, model.ShippingInfo{
		FullName:     "Ana García",
		AddressLine1: "Calle Mayor 1",
		City:         "Madrid",
		PostalCode:   "28001",
		Phone:        "600123456",
	})
	if err != nil {
		log.Fatalf("Failed to submit checkout form: %v", err)
	}
	fmt.Printf("\nForm submitted.\nAssistant: %s\n", out.Reply)

	out, err = eng.ProcessTurn(ctx, sessionID, "sí")
	if err != nil {
		log.Fatalf("Failed to confirm order: %v", err)
	}
	fmt.Printf("\nAssistant: %s\n", out.Reply)

	fmt.Println("\nDemo conversation completed.")
}
