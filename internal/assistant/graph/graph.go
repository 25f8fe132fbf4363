package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/cartchat-core-poc/server/internal/assistant/catalog"
	"github.com/cartchat-core-poc/server/internal/assistant/graph/nodes"
	"github.com/cartchat-core-poc/server/internal/assistant/graph/observers"
	"github.com/cartchat-core-poc/server/internal/assistant/graph/routing"
	"github.com/cartchat-core-poc/server/internal/assistant/llm"
	"github.com/cartchat-core-poc/server/internal/assistant/model"
	logx "github.com/cartchat-core-poc/server/pkg/logger"
)

// Runner executes one conversation turn through the compiled graph.
type Runner interface {
	Invoke(ctx context.Context, state *model.ConversationState) (*model.ConversationState, error)
}

// Config holds everything needed to compose the turn graph end-to-end.
type Config struct {
	Catalog      *catalog.Service
	Router       llm.Interpreter
	RouterConfig model.RouterModelConfig
}

// GraphBuilder handles the construction of the turn-handling graph.
type GraphBuilder struct {
	deps      *nodes.Deps
	interpret *interpreter
	graph     *compose.Graph[*model.ConversationState, *model.ConversationState]
}

type graphRunner struct {
	runnable compose.Runnable[*model.ConversationState, *model.ConversationState]
}

func (r *graphRunner) Invoke(ctx context.Context, state *model.ConversationState) (*model.ConversationState, error) {
	out, err := r.runnable.Invoke(ctx, state, compose.WithCallbacks(observers.NewTurnCallbacks()))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return state, nil
	}
	return out, nil
}

// BuildTurnGraph composes the routing pipeline, the handler nodes, and the
// optional model router into a compiled graph, returning a Runner.
func BuildTurnGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog service is nil")
	}

	router := cfg.Router
	if router == nil {
		router = llm.Disabled{}
	}

	builder := &GraphBuilder{
		deps: nodes.NewDeps(cfg.Catalog),
		interpret: &interpreter{
			rules:  routing.NewRules(cfg.Catalog),
			router: router,
			cfg:    cfg.RouterConfig,
		},
		graph: compose.NewGraph[*model.ConversationState, *model.ConversationState](),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// handlerNodes maps branch targets to their handlers. The interpret and echo
// nodes are wired separately.
func (b *GraphBuilder) handlerNodes() map[string]func(context.Context, *model.ConversationState) (*model.ConversationState, error) {
	return map[string]func(context.Context, *model.ConversationState) (*model.ConversationState, error){
		routing.NodeShowCatalog:      b.deps.ShowCatalog,
		routing.NodeShowDetail:       b.deps.ShowProductDetail,
		routing.NodeAddToCart:        b.deps.AddToCart,
		routing.NodeRemoveFromCart:   b.deps.RemoveFromCart,
		routing.NodeViewCart:         b.deps.ViewCart,
		routing.NodeBulkCartUpdate:   b.deps.BulkCartUpdate,
		routing.NodeResolveChoice:    b.deps.ResolveProductChoice,
		routing.NodeAdjustCartQty:    b.deps.AdjustCartQty,
		routing.NodeCheckoutConfirm:  b.deps.CheckoutConfirm,
		routing.NodeHandleConfirm:    b.deps.HandleCheckoutConfirmation,
		routing.NodeHandleReview:     b.deps.HandleCheckoutReview,
		routing.NodeCollectShipping:  b.deps.CollectShipping,
		routing.NodeRecommendProduct: b.deps.RecommendProduct,
	}
}

// addNodes adds all processing nodes to the graph.
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(routing.NodeInterpret,
		compose.InvokableLambda(b.interpret.Interpret))

	for name, handler := range b.handlerNodes() {
		b.graph.AddLambdaNode(name, compose.InvokableLambda(handler))
	}

	b.graph.AddLambdaNode(routing.NodeEcho,
		compose.InvokableLambda(b.deps.Echo))
}

// addEdges creates the main flow connections between nodes.
func (b *GraphBuilder) addEdges() {
	b.graph.AddEdge(compose.START, routing.NodeInterpret)

	for name := range b.handlerNodes() {
		b.graph.AddEdge(name, compose.END)
	}
	b.graph.AddEdge(routing.NodeEcho, compose.END)
}

// addBranches creates the dispatch branch after the interpret node.
func (b *GraphBuilder) addBranches() error {
	targets := map[string]bool{routing.NodeEcho: true}
	for name := range b.handlerNodes() {
		targets[name] = true
	}

	dispatch := compose.NewGraphBranch(
		func(ctx context.Context, s *model.ConversationState) (string, error) {
			if s.NextNode != "" && targets[s.NextNode] {
				return s.NextNode, nil
			}
			// Rules that answer inline leave NextNode empty.
			return routing.NodeEcho, nil
		},
		targets,
	)

	if err := b.graph.AddBranch(routing.NodeInterpret, dispatch); err != nil {
		logx.Error().Err(err).Msg("Error adding dispatch branch")
		return fmt.Errorf("error adding dispatch branch: %w", err)
	}
	return nil
}

// compile finalizes and compiles the graph.
func (b *GraphBuilder) compile(ctx context.Context) (Runner, error) {
	// One interpret hop plus one handler hop; headroom for framework steps.
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(10))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Turn graph compiled successfully")
	return &graphRunner{runnable: runnable}, nil
}
