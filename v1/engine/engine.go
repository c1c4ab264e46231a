package engine

import (
	"context"
	"fmt"

	"github.com/embedgate/embedgate/v1/bridge"
	"github.com/embedgate/embedgate/v1/config"
	"github.com/embedgate/embedgate/v1/embedding"
	"github.com/embedgate/embedgate/v1/logger"
	"github.com/embedgate/embedgate/v1/multimodal"
	"github.com/embedgate/embedgate/v1/registry"
)

// Version of the embedding façade, reported to the host engine.
const Version = "0.3.0"

// Engine is the context object handed to the host engine's binding layer.
// It owns the client registry and the shared execution bridge explicitly —
// there are no process-wide singletons — while still guaranteeing a single
// shared bridge per engine instance.
type Engine struct {
	resolver *config.Resolver
	registry *registry.Registry
	bridge   *bridge.Bridge
	ops      *embedding.Operations
	pipeline *multimodal.Pipeline
	log      *logger.Logger
}

// NewEngine assembles an Engine from its components. Fx applications use
// this through FXModule; embedders without a container use New.
func NewEngine(
	resolver *config.Resolver,
	reg *registry.Registry,
	b *bridge.Bridge,
	ops *embedding.Operations,
	pipeline *multimodal.Pipeline,
	log *logger.Logger,
) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	return &Engine{
		resolver: resolver,
		registry: reg,
		bridge:   b,
		ops:      ops,
		pipeline: pipeline,
		log:      log,
	}
}

// New wires an Engine with default components: a real provider registry,
// a fresh bridge, no observer, and a silent logger.
func New() *Engine {
	b := bridge.New()
	log := logger.NewNop()
	return NewEngine(
		config.NewResolver(),
		registry.New(),
		b,
		embedding.NewOperations(b, log, nil),
		multimodal.NewPipeline(b, log, nil),
		log,
	)
}

// Register resolves the configuration and registers the client under the
// given name. All configuration errors surface here, synchronously; a
// prior client under the same name is replaced.
func (e *Engine) Register(name string, in config.Input) error {
	if in.Name == "" {
		in.Name = name
	}
	desc, err := e.resolver.Resolve(in)
	if err != nil {
		return fmt.Errorf("engine: register %q: %w", name, err)
	}
	if err := e.registry.Register(name, desc); err != nil {
		return fmt.Errorf("engine: register %q: %w", name, err)
	}
	e.log.Info("client registered", nil, map[string]interface{}{
		"client":   name,
		"provider": desc.Provider,
		"model":    desc.Model,
	})
	return nil
}

// EmbedOne generates one embedding using the named client.
func (e *Engine) EmbedOne(ctx context.Context, name, text string) ([]float32, error) {
	client, err := e.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return e.ops.EmbedOne(ctx, client, text)
}

// EmbedMany generates embeddings for all texts using the named client.
// The output order equals the input order; the call is all-or-nothing.
func (e *Engine) EmbedMany(ctx context.Context, name string, texts []string) ([][]float32, error) {
	client, err := e.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return e.ops.EmbedMany(ctx, client, texts)
}

// ProcessMultimodal runs raw image bytes through the describe-then-embed
// pipeline of the named client, with the default describe prompt.
func (e *Engine) ProcessMultimodal(ctx context.Context, name string, items [][]byte) (*MultimodalResult, error) {
	return e.ProcessMultimodalWithPrompt(ctx, name, items, "")
}

// ProcessMultimodalWithPrompt is ProcessMultimodal with a caller-supplied
// describe prompt.
func (e *Engine) ProcessMultimodalWithPrompt(ctx context.Context, name string, items [][]byte, prompt string) (*MultimodalResult, error) {
	client, err := e.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	results, stats, err := e.pipeline.ProcessWithPrompt(ctx, client, items, prompt)
	if err != nil {
		return nil, err
	}
	return &MultimodalResult{Results: results, Stats: stats}, nil
}

// Version reports the façade version to the host engine.
func (e *Engine) Version() string {
	return Version
}

// Clients returns the names of all registered clients, sorted.
func (e *Engine) Clients() []string {
	return e.registry.Names()
}

// Close tears down every registered client and the shared bridge. The
// engine must not be used afterwards.
func (e *Engine) Close() error {
	regErr := e.registry.Close()
	bridgeErr := e.bridge.Close()
	if regErr != nil {
		return regErr
	}
	return bridgeErr
}
