package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the logger into an Fx application. It provides *Logger
// (a logger.Config must be available in the container) and registers a
// shutdown hook that flushes buffered entries.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle flushes the Zap logger on application shutdown.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Zap.Sync()
		},
	})
}
