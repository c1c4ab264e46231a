package provider

import "context"

// API is the provider-handle contract consumed by the operation layers.
// The concrete implementation is Handle; tests substitute fakes.
type API interface {
	// Embed generates one embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for all texts, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Describe runs the client's vision model over raw image bytes and
	// returns a textual description. An empty prompt selects the default
	// describe prompt.
	Describe(ctx context.Context, image []byte, prompt string) (string, error)

	// Close releases any resources held by the handle.
	Close() error
}
