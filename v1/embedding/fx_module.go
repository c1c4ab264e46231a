package embedding

import "go.uber.org/fx"

// FXModule provides the embedding operations façade. The container must
// supply a *bridge.Bridge, a *logger.Logger, and an
// observability.Observer (which may be nil).
var FXModule = fx.Module("embedding",
	fx.Provide(NewOperations),
)
