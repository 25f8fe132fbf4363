// Package observers provides graph-level callbacks that trace each node a
// turn passes through. The trace is debug-only and never alters state.
package observers

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"

	logx "github.com/cartchat-core-poc/server/pkg/logger"
)

// NewTurnCallbacks builds the handler attached to every graph invocation.
func NewTurnCallbacks() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, input einocb.CallbackInput) context.Context {
			if info != nil {
				logx.Debug().Str("node", info.Name).Str("component", string(info.Component)).Msg("node start")
			}
			return ctx
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, output einocb.CallbackOutput) context.Context {
			if info != nil {
				logx.Debug().Str("node", info.Name).Msg("node end")
			}
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			if info != nil {
				logx.Error().Err(err).Str("node", info.Name).Msg("node error")
			}
			return ctx
		}).
		Build()
}
