package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embedgate/embedgate/v1/bridge"
	"github.com/embedgate/embedgate/v1/config"
	"github.com/embedgate/embedgate/v1/embedding"
	"github.com/embedgate/embedgate/v1/logger"
	"github.com/embedgate/embedgate/v1/multimodal"
	"github.com/embedgate/embedgate/v1/provider"
	"github.com/embedgate/embedgate/v1/registry"
)

// fakeHandle is a hand-rolled provider.API that answers from the model
// name, letting tests tell registered configurations apart.
type fakeHandle struct {
	model string
}

func (f *fakeHandle) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{float32(len(f.model)), float32(len(text))}, nil
}

func (f *fakeHandle) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(i), float32(len(text))}
	}
	return out, nil
}

func (f *fakeHandle) Describe(ctx context.Context, image []byte, prompt string) (string, error) {
	return fmt.Sprintf("image of %d bytes", len(image)), nil
}

func (f *fakeHandle) Close() error { return nil }

func testEngine(t *testing.T) *Engine {
	t.Helper()
	b := bridge.New()
	log := logger.NewNop()
	reg := registry.NewWithConstructor(func(desc *config.ClientDescriptor) (provider.API, error) {
		return &fakeHandle{model: desc.Model}, nil
	})
	e := NewEngine(
		config.NewResolver(),
		reg,
		b,
		embedding.NewOperations(b, log, nil),
		multimodal.NewPipeline(b, log, nil),
		log,
	)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestRegister_ThenEmbedOne(t *testing.T) {
	e := testEngine(t)

	require.NoError(t, e.Register("default", config.Input{Raw: "ollama::nomic-embed-text"}))

	vec, err := e.EmbedOne(context.Background(), "default", "hello")
	require.NoError(t, err)
	assert.Len(t, vec, 2)
}

func TestRegister_ConfigErrorIsSynchronous(t *testing.T) {
	e := testEngine(t)

	err := e.Register("bad", config.Input{Raw: "acme::model"})
	require.Error(t, err)
	assert.True(t, config.IsUnknownProviderError(err))
	assert.Contains(t, err.Error(), `"bad"`)

	_, err = e.EmbedOne(context.Background(), "bad", "x")
	assert.True(t, registry.IsClientNotFoundError(err))
}

func TestRegister_OverwriteReflectsNewConfig(t *testing.T) {
	e := testEngine(t)

	require.NoError(t, e.Register("a", config.Input{Raw: "ollama::short"}))
	first, err := e.EmbedOne(context.Background(), "a", "x")
	require.NoError(t, err)

	require.NoError(t, e.Register("a", config.Input{Raw: "ollama::a-much-longer-model"}))
	second, err := e.EmbedOne(context.Background(), "a", "x")
	require.NoError(t, err)

	// The fake encodes the model length, so the overwrite must be visible.
	assert.NotEqual(t, first[0], second[0])
}

func TestEmbedMany_UnknownClient(t *testing.T) {
	e := testEngine(t)

	_, err := e.EmbedMany(context.Background(), "missing", []string{"a"})
	assert.True(t, registry.IsClientNotFoundError(err))
}

func TestProcessMultimodal_EndToEnd(t *testing.T) {
	e := testEngine(t)

	require.NoError(t, e.Register("vision", config.Input{
		Raw: `{"provider":"ollama","model":"nomic-embed-text","vision_model":"llava:7b"}`,
	}))

	res, err := e.ProcessMultimodal(context.Background(), "vision", [][]byte{{1}, {2, 3}})
	require.NoError(t, err)
	require.Len(t, res.Results, 2)
	assert.Equal(t, 2, res.Stats.TotalProcessed)
	assert.Equal(t, 2, res.Stats.Successful)
}

func TestProcessMultimodal_Unsupported(t *testing.T) {
	e := testEngine(t)

	require.NoError(t, e.Register("text-only", config.Input{Raw: "ollama::nomic-embed-text"}))

	_, err := e.ProcessMultimodal(context.Background(), "text-only", [][]byte{{1}})
	assert.True(t, multimodal.IsUnsupportedOperationError(err))
}

func TestClients_Sorted(t *testing.T) {
	e := testEngine(t)

	require.NoError(t, e.Register("b", config.Input{Raw: "ollama::m"}))
	require.NoError(t, e.Register("a", config.Input{Raw: "ollama::m"}))

	assert.Equal(t, []string{"a", "b"}, e.Clients())
}
