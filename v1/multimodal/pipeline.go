package multimodal

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/embedgate/embedgate/v1/bridge"
	"github.com/embedgate/embedgate/v1/logger"
	"github.com/embedgate/embedgate/v1/observability"
	"github.com/embedgate/embedgate/v1/registry"
)

// Pipeline runs the two-stage describe-then-embed processing of raw image
// batches. Unlike the text operations, failures are isolated per item: one
// bad input never aborts its siblings.
type Pipeline struct {
	bridge   *bridge.Bridge
	log      *logger.Logger
	observer observability.Observer
}

// NewPipeline builds the pipeline. The observer may be nil.
func NewPipeline(b *bridge.Bridge, log *logger.Logger, observer observability.Observer) *Pipeline {
	if log == nil {
		log = logger.NewNop()
	}
	return &Pipeline{bridge: b, log: log, observer: observer}
}

// Process runs every item through the describe stage (vision model) and
// the embed stage (text model) with the default describe prompt.
func (p *Pipeline) Process(ctx context.Context, client *registry.RegisteredClient, items [][]byte) ([]ItemResult, Stats, error) {
	return p.ProcessWithPrompt(ctx, client, items, "")
}

// ProcessWithPrompt is Process with a caller-supplied describe prompt.
// An empty prompt selects the provider's default.
//
// Concurrency is bounded by the client's MaxConcurrency: at most that many
// tasks are past admission at any instant, the rest queue. Each admitted
// task is subject to the client's RequestTimeout; a timed-out or panicked
// task is recorded as that item's failure without delaying its siblings.
// Results land in slots addressed by input index, so completion order
// never affects output order.
func (p *Pipeline) ProcessWithPrompt(ctx context.Context, client *registry.RegisteredClient, items [][]byte, prompt string) ([]ItemResult, Stats, error) {
	desc := client.Descriptor
	if !desc.SupportsMultimodal() {
		return nil, Stats{}, fmt.Errorf("%w (client %q)", ErrUnsupportedOperation, client.Name)
	}

	results := make([]ItemResult, len(items))
	if len(items) == 0 {
		return results, Stats{}, nil
	}

	start := time.Now()
	err := p.bridge.Run(ctx, func(ctx context.Context) error {
		sem := semaphore.NewWeighted(int64(desc.Performance.MaxConcurrency))
		var wg sync.WaitGroup

		for i, raw := range items {
			wg.Add(1)
			go func(i int, raw []byte) {
				defer wg.Done()
				if err := sem.Acquire(ctx, 1); err != nil {
					results[i] = ItemResult{Err: fmt.Errorf("admission: %w", err)}
					return
				}
				defer sem.Release(1)
				results[i] = p.processItem(ctx, client, raw, prompt)
			}(i, raw)
		}

		wg.Wait()
		return nil
	})

	elapsed := time.Since(start)
	if err != nil {
		// Bridge-level failure (scheduling or closed bridge) aborts the
		// batch; no partial results are returned.
		p.observe(client, elapsed, err, Stats{})
		return nil, Stats{}, err
	}

	stats := computeStats(results, elapsed)
	p.observe(client, elapsed, nil, stats)
	p.log.Info("multimodal batch processed", nil, map[string]interface{}{
		"client":     client.Name,
		"total":      stats.TotalProcessed,
		"successful": stats.Successful,
		"failed":     stats.Failed,
		"duration":   elapsed,
	})
	return results, stats, nil
}

// processItem runs one describe-then-embed task. The two stages are
// chained so a describe failure short-circuits the embed stage for this
// item only. A panic inside either stage becomes this item's failure.
func (p *Pipeline) processItem(ctx context.Context, client *registry.RegisteredClient, raw []byte, prompt string) (result ItemResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ItemResult{Err: fmt.Errorf("%w: %v", bridge.ErrTaskPanic, r)}
		}
	}()

	// The timeout clock starts at admission, not at batch submission:
	// queued items are not penalized for waiting on a slot.
	itemCtx, cancel := context.WithTimeout(ctx, client.Descriptor.Performance.RequestTimeout)
	defer cancel()

	description, err := client.Handle.Describe(itemCtx, raw, prompt)
	if err != nil {
		return ItemResult{Err: fmt.Errorf("describe stage: %w", err)}
	}

	embedding, err := client.Handle.Embed(itemCtx, description)
	if err != nil {
		return ItemResult{Err: fmt.Errorf("embed stage: %w", err)}
	}
	return ItemResult{Embedding: embedding}
}

// observe notifies the observer about a pipeline run if one is configured.
func (p *Pipeline) observe(client *registry.RegisteredClient, duration time.Duration, err error, stats Stats) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveOperation(observability.OperationContext{
		Component:   "multimodal",
		Operation:   "process",
		Resource:    client.Name,
		SubResource: client.Descriptor.VisionModel,
		Duration:    duration,
		Error:       err,
		Size:        int64(stats.TotalProcessed),
		Metadata: map[string]string{
			"successful": strconv.Itoa(stats.Successful),
			"failed":     strconv.Itoa(stats.Failed),
		},
	})
}
