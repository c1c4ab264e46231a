package config

import (
	"fmt"
	"time"
)

// Provider identifies an external embedding/vision service. The set is
// closed: resolution rejects any tag outside of it.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderNomic      Provider = "nomic"
	ProviderCohere     Provider = "cohere"
	ProviderJina       Provider = "jina"
	ProviderMixedbread Provider = "mixedbread"
	ProviderOllama     Provider = "ollama"
	ProviderLlamafile  Provider = "llamafile"
)

// Providers lists every supported provider tag.
var Providers = []Provider{
	ProviderOpenAI,
	ProviderNomic,
	ProviderCohere,
	ProviderJina,
	ProviderMixedbread,
	ProviderOllama,
	ProviderLlamafile,
}

// credentialEnv maps each provider to the environment variable consulted
// when the configuration itself carries no credential.
var credentialEnv = map[Provider]string{
	ProviderOpenAI:     "OPENAI_API_KEY",
	ProviderNomic:      "NOMIC_API_KEY",
	ProviderCohere:     "CO_API_KEY",
	ProviderJina:       "JINA_API_KEY",
	ProviderMixedbread: "MIXEDBREAD_API_KEY",
}

// ParseProvider validates a provider tag against the closed set.
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	for _, known := range Providers {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

// RequiresCredential reports whether the provider rejects unauthenticated
// requests. Local providers (ollama, llamafile) do not.
func (p Provider) RequiresCredential() bool {
	_, ok := credentialEnv[p]
	return ok
}

// CredentialEnvVar returns the environment variable consulted for the
// provider's credential fallback, or "" for providers that need none.
func (p Provider) CredentialEnvVar() string {
	return credentialEnv[p]
}

// Credential holds an API key or service token. It never appears in logs
// or serialized output: both String and MarshalJSON redact the value.
type Credential string

// IsSet reports whether a credential is present.
func (c Credential) IsSet() bool { return c != "" }

func (c Credential) String() string {
	if c == "" {
		return ""
	}
	return "[redacted]"
}

// MarshalJSON redacts the credential.
func (c Credential) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte(`""`), nil
	}
	return []byte(`"[redacted]"`), nil
}

// Default performance values applied when the configuration leaves the
// corresponding field unset.
const (
	DefaultMaxConcurrency  = 4
	DefaultRequestTimeout  = 30 * time.Second
	DefaultStreamBatchSize = 10
)

// PerformanceConfig bounds the resource usage of a registered client.
type PerformanceConfig struct {
	// MaxConcurrency is the maximum number of in-flight pipeline tasks.
	// Default: 4
	MaxConcurrency int

	// RequestTimeout bounds each individual provider request.
	// Default: 30 seconds
	RequestTimeout time.Duration

	// StreamBatchSize is the preferred batch size hint handed to the
	// provider layer for batched requests.
	// Default: 10
	StreamBatchSize int
}

// DefaultPerformance returns the performance defaults.
func DefaultPerformance() PerformanceConfig {
	return PerformanceConfig{
		MaxConcurrency:  DefaultMaxConcurrency,
		RequestTimeout:  DefaultRequestTimeout,
		StreamBatchSize: DefaultStreamBatchSize,
	}
}

// normalize fills unset fields with defaults and rejects invalid values.
func (p *PerformanceConfig) normalize() error {
	if p.MaxConcurrency == 0 {
		p.MaxConcurrency = DefaultMaxConcurrency
	}
	if p.MaxConcurrency < 1 {
		return fmt.Errorf("%w: max_concurrency must be >= 1", ErrMalformedInput)
	}
	if p.RequestTimeout == 0 {
		p.RequestTimeout = DefaultRequestTimeout
	}
	if p.RequestTimeout < 0 {
		return fmt.Errorf("%w: request_timeout must be positive", ErrMalformedInput)
	}
	if p.StreamBatchSize == 0 {
		p.StreamBatchSize = DefaultStreamBatchSize
	}
	if p.StreamBatchSize < 1 {
		return fmt.Errorf("%w: stream_batch_size must be >= 1", ErrMalformedInput)
	}
	return nil
}

// ClientDescriptor is the canonical, validated representation of a client
// configuration. It is immutable once resolved.
type ClientDescriptor struct {
	// Provider is the validated provider tag.
	Provider Provider

	// Model is the embedding model identifier. Never empty.
	Model string

	// Credential authenticates requests. May be empty for providers that
	// require no credential.
	Credential Credential

	// EndpointOverride replaces the provider's default base URL when set.
	EndpointOverride string

	// VisionModel is the model used by the describe stage of the
	// multimodal pipeline. When empty, multimodal operations are
	// unavailable for this client.
	VisionModel string

	// Performance bounds concurrency and timeouts for this client.
	Performance PerformanceConfig
}

// SupportsMultimodal reports whether the descriptor carries a vision model.
func (d *ClientDescriptor) SupportsMultimodal() bool {
	return d.VisionModel != ""
}
