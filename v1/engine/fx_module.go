package engine

import (
	"context"

	"go.uber.org/fx"

	"github.com/embedgate/embedgate/v1/bridge"
	"github.com/embedgate/embedgate/v1/config"
	"github.com/embedgate/embedgate/v1/embedding"
	"github.com/embedgate/embedgate/v1/multimodal"
	"github.com/embedgate/embedgate/v1/registry"
)

// FXModule wires a complete Engine into Fx: resolver, registry, bridge,
// both operation façades, and the Engine itself, with a shutdown hook
// tearing everything down. The container must supply a *logger.Logger and
// an observability.Observer (nil is acceptable; the metrics module
// provides a real one).
var FXModule = fx.Module("engine",
	fx.Provide(
		config.NewResolver,
		registry.New,
		bridge.New,
	),
	embedding.FXModule,
	multimodal.FXModule,
	fx.Provide(NewEngine),
	fx.Invoke(RegisterEngineLifecycle),
)

// RegisterEngineLifecycle closes the engine (registry and bridge) on
// application shutdown.
func RegisterEngineLifecycle(lc fx.Lifecycle, e *Engine) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return e.Close()
		},
	})
}
