package multimodal

import "go.uber.org/fx"

// FXModule provides the multimodal pipeline. The container must supply a
// *bridge.Bridge, a *logger.Logger, and an observability.Observer (which
// may be nil).
var FXModule = fx.Module("multimodal",
	fx.Provide(NewPipeline),
)
