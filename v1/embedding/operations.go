package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/embedgate/embedgate/v1/bridge"
	"github.com/embedgate/embedgate/v1/logger"
	"github.com/embedgate/embedgate/v1/observability"
	"github.com/embedgate/embedgate/v1/registry"
)

// Operations is the text-embedding façade. Both operations are
// all-or-nothing: any failure aborts the whole call and is reported to
// the caller. Retries, if any, belong to the provider library.
type Operations struct {
	bridge   *bridge.Bridge
	log      *logger.Logger
	observer observability.Observer
}

// NewOperations builds the façade. The observer may be nil.
func NewOperations(b *bridge.Bridge, log *logger.Logger, observer observability.Observer) *Operations {
	if log == nil {
		log = logger.NewNop()
	}
	return &Operations{bridge: b, log: log, observer: observer}
}

// EmbedOne generates one embedding for the text through a single provider
// round trip.
func (o *Operations) EmbedOne(ctx context.Context, client *registry.RegisteredClient, text string) ([]float32, error) {
	start := time.Now()

	var result []float32
	err := o.bridge.Run(ctx, func(ctx context.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx, client.Descriptor.Performance.RequestTimeout)
		defer cancel()

		embedding, err := client.Handle.Embed(reqCtx, text)
		if err != nil {
			return fmt.Errorf("embedding: client %q: %w", client.Name, err)
		}
		result = embedding
		return nil
	})

	o.observe("embed_one", client, time.Since(start), err, 1)
	if err != nil {
		o.log.Error("embed_one failed", err, map[string]interface{}{"client": client.Name})
		return nil, err
	}
	return result, nil
}

// EmbedMany generates embeddings for all texts as one batched provider
// request. The output has the same length and order as the input; either
// every item succeeds or the whole call fails.
func (o *Operations) EmbedMany(ctx context.Context, client *registry.RegisteredClient, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("embedding: client %q: %w", client.Name, ErrNoInput)
	}
	start := time.Now()

	var results [][]float32
	err := o.bridge.Run(ctx, func(ctx context.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx, client.Descriptor.Performance.RequestTimeout)
		defer cancel()

		embeddings, err := client.Handle.EmbedBatch(reqCtx, texts)
		if err != nil {
			return fmt.Errorf("embedding: client %q: %w", client.Name, err)
		}
		if len(embeddings) != len(texts) {
			return fmt.Errorf("embedding: client %q: expected %d embeddings, got %d",
				client.Name, len(texts), len(embeddings))
		}
		results = embeddings
		return nil
	})

	o.observe("embed_many", client, time.Since(start), err, int64(len(texts)))
	if err != nil {
		o.log.Error("embed_many failed", err, map[string]interface{}{
			"client": client.Name,
			"count":  len(texts),
		})
		return nil, err
	}
	return results, nil
}

// observe notifies the observer about an operation if one is configured.
func (o *Operations) observe(operation string, client *registry.RegisteredClient, duration time.Duration, err error, size int64) {
	if o.observer != nil {
		o.observer.ObserveOperation(observability.OperationContext{
			Component:   "embedding",
			Operation:   operation,
			Resource:    client.Name,
			SubResource: client.Descriptor.Model,
			Duration:    duration,
			Error:       err,
			Size:        size,
		})
	}
}
