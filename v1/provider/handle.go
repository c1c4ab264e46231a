package provider

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/embedgate/embedgate/v1/config"
)

// defaultBaseURL maps each provider to its OpenAI-compatible API root.
// Every supported provider speaks the compatible surface, either natively
// or through a dedicated compatibility endpoint.
var defaultBaseURL = map[config.Provider]string{
	config.ProviderOpenAI:     "https://api.openai.com/v1",
	config.ProviderNomic:      "https://api-atlas.nomic.ai/v1",
	config.ProviderCohere:     "https://api.cohere.com/compatibility/v1",
	config.ProviderJina:       "https://api.jina.ai/v1",
	config.ProviderMixedbread: "https://api.mixedbread.ai/v1",
	config.ProviderOllama:     "http://localhost:11434/v1",
	config.ProviderLlamafile:  "http://localhost:8080/v1",
}

// Default prompts for the describe stage.
const (
	describeSystemPrompt = "You are a helpful vision AI. Describe images accurately and concisely " +
		"for embedding purposes. Focus on key visual elements, objects, scene context, " +
		"colors, and composition."
	describeUserPrompt = "Describe this image in detail for search and embedding purposes:"
)

// Handle is a constructed, reusable provider client. It is shared between
// operations and never mutated after construction.
type Handle struct {
	client      *openai.Client
	provider    config.Provider
	model       string
	visionModel string
	batchSize   int
}

// New eagerly constructs a provider handle from a resolved descriptor so
// that configuration mistakes surface at registration, not on first call.
func New(desc *config.ClientDescriptor) (*Handle, error) {
	if desc.Model == "" {
		return nil, fmt.Errorf("provider %s: model is required", desc.Provider)
	}
	base, ok := defaultBaseURL[desc.Provider]
	if !ok {
		return nil, fmt.Errorf("provider %q has no known endpoint", desc.Provider)
	}
	if desc.EndpointOverride != "" {
		base = strings.TrimRight(desc.EndpointOverride, "/")
	}

	cfg := openai.DefaultConfig(string(desc.Credential))
	cfg.BaseURL = base
	cfg.HTTPClient = &http.Client{Timeout: desc.Performance.RequestTimeout}

	return &Handle{
		client:      openai.NewClientWithConfig(cfg),
		provider:    desc.Provider,
		model:       desc.Model,
		visionModel: desc.VisionModel,
		batchSize:   desc.Performance.StreamBatchSize,
	}, nil
}

// Embed generates one embedding for the given text.
func (h *Handle) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := h.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(h.model),
	})
	if err != nil {
		return nil, fmt.Errorf("provider %s: embedding request: %w", h.provider, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("provider %s: %w", h.provider, ErrNoEmbedding)
	}
	return resp.Data[0].Embedding, nil
}

// EmbedBatch generates embeddings for all texts, in input order. Requests
// are issued in chunks of the configured batch size; within each chunk the
// provider-reported index is honored, so provider-side reordering cannot
// leak into the output.
func (h *Handle) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	results := make([][]float32, len(texts))
	for start := 0; start < len(texts); start += h.batchSize {
		end := min(start+h.batchSize, len(texts))
		chunk := texts[start:end]

		resp, err := h.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: chunk,
			Model: openai.EmbeddingModel(h.model),
		})
		if err != nil {
			return nil, fmt.Errorf("provider %s: batch embedding request: %w", h.provider, err)
		}
		if len(resp.Data) != len(chunk) {
			return nil, fmt.Errorf("provider %s: expected %d embeddings, got %d",
				h.provider, len(chunk), len(resp.Data))
		}
		for _, data := range resp.Data {
			if data.Index < 0 || data.Index >= len(chunk) {
				return nil, fmt.Errorf("provider %s: embedding index %d out of range",
					h.provider, data.Index)
			}
			results[start+data.Index] = data.Embedding
		}
	}
	return results, nil
}

// Describe runs the vision model over raw image bytes and returns a
// textual description suitable for embedding.
func (h *Handle) Describe(ctx context.Context, image []byte, prompt string) (string, error) {
	if h.visionModel == "" {
		return "", fmt.Errorf("provider %s: %w", h.provider, ErrVisionModelNotSet)
	}
	if prompt == "" {
		prompt = describeUserPrompt
	}

	resp, err := h.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: h.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: describeSystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageDataURL(image)},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("provider %s: vision request: %w", h.provider, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("provider %s: %w", h.provider, ErrNoDescription)
	}
	return resp.Choices[0].Message.Content, nil
}

// Close releases resources. The underlying HTTP client needs no explicit
// cleanup.
func (h *Handle) Close() error {
	return nil
}

// imageDataURL encodes raw image bytes as a base64 data URL, sniffing the
// content type from the payload.
func imageDataURL(image []byte) string {
	mime := http.DetectContentType(image)
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)
}

var _ API = (*Handle)(nil)
