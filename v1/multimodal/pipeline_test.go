package multimodal

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedgate/embedgate/v1/bridge"
	"github.com/embedgate/embedgate/v1/config"
	"github.com/embedgate/embedgate/v1/registry"
)

// visionHandle is a hand-rolled provider.API whose behavior is keyed by
// the item index encoded in the first image byte.
type visionHandle struct {
	delay        time.Duration
	failIndex    int // -1 for none
	panicIndex   int // -1 for none
	describeCost map[int]time.Duration

	describeCalls atomic.Int64
	inFlight      atomic.Int64
	maxInFlight   atomic.Int64
}

func newVisionHandle() *visionHandle {
	return &visionHandle{failIndex: -1, panicIndex: -1}
}

func (v *visionHandle) Describe(ctx context.Context, image []byte, prompt string) (string, error) {
	v.describeCalls.Add(1)
	current := v.inFlight.Add(1)
	defer v.inFlight.Add(-1)
	for {
		max := v.maxInFlight.Load()
		if current <= max || v.maxInFlight.CompareAndSwap(max, current) {
			break
		}
	}

	index := int(image[0])
	if v.panicIndex == index {
		panic("corrupted image buffer")
	}

	delay := v.delay
	if d, ok := v.describeCost[index]; ok {
		delay = d
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if v.failIndex == index {
		return "", errors.New("vision model rejected the image")
	}
	return fmt.Sprintf("description of item %d", index), nil
}

func (v *visionHandle) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Encode the description length so tests can correlate results with inputs.
	return []float32{float32(len(text))}, nil
}

func (v *visionHandle) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("not used by the pipeline")
}

func (v *visionHandle) Close() error { return nil }

func visionClient(handle *visionHandle, maxConcurrency int, timeout time.Duration) *registry.RegisteredClient {
	return &registry.RegisteredClient{
		Name: "vision-client",
		Descriptor: &config.ClientDescriptor{
			Provider:    config.ProviderOpenAI,
			Model:       "text-embedding-3-small",
			Credential:  "sk-test",
			VisionModel: "gpt-4o-mini",
			Performance: config.PerformanceConfig{
				MaxConcurrency:  maxConcurrency,
				RequestTimeout:  timeout,
				StreamBatchSize: config.DefaultStreamBatchSize,
			},
		},
		Handle: handle,
	}
}

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	b := bridge.New()
	t.Cleanup(func() { _ = b.Close() })
	return NewPipeline(b, nil, nil)
}

func items(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte{byte(i)}
	}
	return out
}

func TestProcess_OrderingIndependentOfCompletionOrder(t *testing.T) {
	p := newPipeline(t)
	handle := newVisionHandle()
	// Later items finish first: item 0 is the slowest.
	handle.describeCost = map[int]time.Duration{
		0: 80 * time.Millisecond,
		1: 40 * time.Millisecond,
		2: 10 * time.Millisecond,
		3: 0,
	}

	results, stats, err := p.Process(context.Background(), visionClient(handle, 4, time.Second), items(4))
	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, 4, stats.TotalProcessed)

	for i, r := range results {
		require.False(t, r.Failed(), "item %d failed: %v", i, r.Err)
		// The fake embeds the description length; descriptions differ only
		// in the item index, so equal indexes must line up.
		want := float32(len(fmt.Sprintf("description of item %d", i)))
		assert.Equal(t, want, r.Embedding[0], "slot %d holds the wrong item", i)
	}
}

func TestProcess_ConcurrencyBound(t *testing.T) {
	p := newPipeline(t)
	handle := newVisionHandle()
	handle.delay = 100 * time.Millisecond

	start := time.Now()
	results, stats, err := p.Process(context.Background(), visionClient(handle, 2, time.Second), items(4))
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, 4, stats.Successful)

	// Two waves of two items: roughly 200ms, not 100ms (unbounded) and
	// not 400ms (serial).
	assert.GreaterOrEqual(t, elapsed, 190*time.Millisecond, "ran with more parallelism than the bound allows")
	assert.Less(t, elapsed, 390*time.Millisecond, "ran serially instead of in bounded waves")
	assert.LessOrEqual(t, handle.maxInFlight.Load(), int64(2), "admission bound exceeded")
}

func TestProcess_FaultIsolation(t *testing.T) {
	p := newPipeline(t)
	handle := newVisionHandle()
	handle.failIndex = 2

	results, stats, err := p.Process(context.Background(), visionClient(handle, 4, time.Second), items(4))
	require.NoError(t, err)
	require.Len(t, results, 4)

	for _, i := range []int{0, 1, 3} {
		assert.False(t, results[i].Failed(), "item %d should have succeeded", i)
	}
	require.True(t, results[2].Failed())
	assert.Contains(t, results[2].Err.Error(), "describe stage")
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 3, stats.Successful)
	assert.Equal(t, stats.TotalProcessed, stats.Successful+stats.Failed)
}

func TestProcess_PanicIsolation(t *testing.T) {
	p := newPipeline(t)
	handle := newVisionHandle()
	handle.panicIndex = 1

	results, stats, err := p.Process(context.Background(), visionClient(handle, 2, time.Second), items(3))
	require.NoError(t, err, "a panicking item must not abort the batch")
	require.Len(t, results, 3)

	require.True(t, results[1].Failed())
	assert.True(t, bridge.IsTaskPanicError(results[1].Err))
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 2, stats.Successful)
}

func TestProcess_PerItemTimeout(t *testing.T) {
	p := newPipeline(t)
	handle := newVisionHandle()
	handle.describeCost = map[int]time.Duration{1: 500 * time.Millisecond}

	start := time.Now()
	results, stats, err := p.Process(context.Background(), visionClient(handle, 4, 50*time.Millisecond), items(3))
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.True(t, results[1].Failed())
	assert.ErrorIs(t, results[1].Err, context.DeadlineExceeded)
	assert.False(t, results[0].Failed())
	assert.False(t, results[2].Failed())
	assert.Equal(t, 1, stats.Failed)
	// The timed-out item releases its slot at the deadline, not after the
	// full simulated cost.
	assert.Less(t, elapsed, 400*time.Millisecond)
}

func TestProcess_EmptyBatch(t *testing.T) {
	p := newPipeline(t)
	handle := newVisionHandle()

	results, stats, err := p.Process(context.Background(), visionClient(handle, 4, time.Second), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, Stats{}, stats)
	assert.Zero(t, handle.describeCalls.Load())
}

func TestProcess_UnsupportedOperation(t *testing.T) {
	p := newPipeline(t)
	handle := newVisionHandle()
	client := visionClient(handle, 4, time.Second)
	client.Descriptor = &config.ClientDescriptor{
		Provider:    config.ProviderOpenAI,
		Model:       "text-embedding-3-small",
		Credential:  "sk-test",
		Performance: config.DefaultPerformance(),
	}

	_, _, err := p.Process(context.Background(), client, items(2))
	require.ErrorIs(t, err, ErrUnsupportedOperation)
	assert.Contains(t, err.Error(), "vision-client")
	assert.Zero(t, handle.describeCalls.Load(), "no task may be scheduled for an unsupported client")
}

func TestProcess_StatsInvariants(t *testing.T) {
	p := newPipeline(t)
	handle := newVisionHandle()
	handle.failIndex = 0
	handle.delay = 5 * time.Millisecond

	results, stats, err := p.Process(context.Background(), visionClient(handle, 3, time.Second), items(7))
	require.NoError(t, err)
	require.Len(t, results, 7)

	assert.Equal(t, 7, stats.TotalProcessed)
	assert.Equal(t, stats.TotalProcessed, stats.Successful+stats.Failed)
	assert.Positive(t, stats.TotalDuration)
	assert.Positive(t, stats.AvgDurationPerItem)
	assert.Positive(t, stats.Throughput)
}
