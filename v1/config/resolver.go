package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Input is the heterogeneous configuration accepted at registration.
//
// Exactly one surface form is consumed, tried in a fixed precedence order:
//
//  1. Options — a structured key/value descriptor already in canonical form.
//  2. Raw as a JSON object with fields provider|model|key|api_key|
//     vision_model|endpoint.
//  3. Raw as a compact string: "provider::model", "provider:credential",
//     or a bare provider tag.
//
// Compact forms that carry no model reuse Name as the model identifier.
type Input struct {
	// Name is the registration name of the client.
	Name string

	// Raw is the compact or JSON configuration string.
	Raw string

	// Options is the canonical key/value form. When non-nil it takes
	// precedence over Raw.
	Options map[string]string
}

// Resolver turns configuration inputs into canonical client descriptors.
//
// Resolution is deterministic: the same input always yields the same
// descriptor. All failures (unknown provider, malformed input, missing
// credential) surface at resolution time, never on first use.
type Resolver struct {
	// env is the credential fallback lookup, keyed by provider-specific
	// environment variable. Overridable in tests.
	env func(string) string
}

// NewResolver returns a Resolver backed by the process environment.
func NewResolver() *Resolver {
	return &Resolver{env: os.Getenv}
}

// Resolve parses the input into a validated ClientDescriptor.
func (r *Resolver) Resolve(in Input) (*ClientDescriptor, error) {
	var (
		desc *ClientDescriptor
		err  error
	)

	switch {
	case in.Options != nil:
		desc, err = r.parseOptions(in)
	case strings.HasPrefix(strings.TrimSpace(in.Raw), "{"):
		desc, err = r.parseJSON(in)
	case strings.TrimSpace(in.Raw) != "":
		desc, err = r.parseCompact(in)
	default:
		return nil, fmt.Errorf("%w: empty configuration", ErrMalformedInput)
	}
	if err != nil {
		return nil, err
	}

	if err := r.finalize(desc); err != nil {
		return nil, err
	}
	return desc, nil
}

// finalize applies performance defaults, the environment credential
// fallback, and the descriptor invariants.
func (r *Resolver) finalize(desc *ClientDescriptor) error {
	if desc.Model == "" {
		return fmt.Errorf("%w: model is required", ErrMalformedInput)
	}
	if err := desc.Performance.normalize(); err != nil {
		return err
	}
	if !desc.Credential.IsSet() {
		if envVar := desc.Provider.CredentialEnvVar(); envVar != "" {
			desc.Credential = Credential(r.env(envVar))
		}
	}
	if !desc.Credential.IsSet() && desc.Provider.RequiresCredential() {
		return fmt.Errorf("%w: provider %q requires an API key (set %s or pass one in the configuration)",
			ErrMissingCredential, desc.Provider, desc.Provider.CredentialEnvVar())
	}
	return nil
}

// parseOptions consumes the canonical key/value form.
func (r *Resolver) parseOptions(in Input) (*ClientDescriptor, error) {
	desc := &ClientDescriptor{}
	for key, value := range in.Options {
		switch key {
		case "provider":
			p, err := ParseProvider(value)
			if err != nil {
				return nil, err
			}
			desc.Provider = p
		case "model":
			desc.Model = value
		case "key", "api_key":
			desc.Credential = Credential(value)
		case "vision_model":
			desc.VisionModel = value
		case "endpoint":
			desc.EndpointOverride = value
		case "max_concurrency":
			n, err := parsePositiveInt(key, value)
			if err != nil {
				return nil, err
			}
			desc.Performance.MaxConcurrency = n
		case "request_timeout":
			d, err := parseTimeout(value)
			if err != nil {
				return nil, err
			}
			desc.Performance.RequestTimeout = d
		case "stream_batch_size":
			n, err := parsePositiveInt(key, value)
			if err != nil {
				return nil, err
			}
			desc.Performance.StreamBatchSize = n
		default:
			return nil, fmt.Errorf("%w: unknown option %q", ErrMalformedInput, key)
		}
	}
	return r.applyModelShorthand(desc)
}

// parseJSON consumes a free-form JSON object.
func (r *Resolver) parseJSON(in Input) (*ClientDescriptor, error) {
	var raw struct {
		Provider    string `json:"provider"`
		Model       string `json:"model"`
		Key         string `json:"key"`
		APIKey      string `json:"api_key"`
		VisionModel string `json:"vision_model"`
		Endpoint    string `json:"endpoint"`
	}
	if err := json.Unmarshal([]byte(in.Raw), &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON object: %v", ErrMalformedInput, err)
	}

	desc := &ClientDescriptor{
		Model:            raw.Model,
		VisionModel:      raw.VisionModel,
		EndpointOverride: raw.Endpoint,
	}
	if raw.Provider != "" {
		p, err := ParseProvider(raw.Provider)
		if err != nil {
			return nil, err
		}
		desc.Provider = p
	}
	switch {
	case raw.Key != "":
		desc.Credential = Credential(raw.Key)
	case raw.APIKey != "":
		desc.Credential = Credential(raw.APIKey)
	}
	return r.applyModelShorthand(desc)
}

// parseCompact consumes the compact string grammar:
//
//	provider::model    — model named inline
//	provider:credential — model taken from the registration name
//	provider           — bare tag, model taken from the registration name
func (r *Resolver) parseCompact(in Input) (*ClientDescriptor, error) {
	raw := strings.TrimSpace(in.Raw)

	if tag, model, ok := strings.Cut(raw, "::"); ok {
		p, err := ParseProvider(tag)
		if err != nil {
			return nil, err
		}
		if model == "" {
			return nil, fmt.Errorf("%w: %q has no model after '::'", ErrMalformedInput, raw)
		}
		return &ClientDescriptor{Provider: p, Model: model}, nil
	}

	if tag, credential, ok := strings.Cut(raw, ":"); ok {
		p, err := ParseProvider(tag)
		if err != nil {
			return nil, err
		}
		if in.Name == "" {
			return nil, fmt.Errorf("%w: %q carries no model and the client name is empty", ErrMalformedInput, raw)
		}
		return &ClientDescriptor{
			Provider:   p,
			Model:      in.Name,
			Credential: Credential(credential),
		}, nil
	}

	p, err := ParseProvider(raw)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: %q carries no model and the client name is empty", ErrMalformedInput, raw)
	}
	return &ClientDescriptor{Provider: p, Model: in.Name}, nil
}

// applyModelShorthand accepts "provider::model" inside a model field and
// checks that a provider ended up set one way or the other.
func (r *Resolver) applyModelShorthand(desc *ClientDescriptor) (*ClientDescriptor, error) {
	if tag, model, ok := strings.Cut(desc.Model, "::"); ok {
		p, err := ParseProvider(tag)
		if err != nil {
			return nil, err
		}
		if desc.Provider != "" && desc.Provider != p {
			return nil, fmt.Errorf("%w: provider %q conflicts with model prefix %q",
				ErrMalformedInput, desc.Provider, tag)
		}
		desc.Provider = p
		desc.Model = model
	}
	if desc.Provider == "" {
		return nil, fmt.Errorf("%w: provider is required", ErrMalformedInput)
	}
	if tag, model, ok := strings.Cut(desc.VisionModel, "::"); ok {
		// Vision models may carry the same prefix; it must agree with the
		// embedding provider since both stages share one client handle.
		p, err := ParseProvider(tag)
		if err != nil {
			return nil, err
		}
		if p != desc.Provider {
			return nil, fmt.Errorf("%w: vision model provider %q conflicts with %q",
				ErrMalformedInput, tag, desc.Provider)
		}
		desc.VisionModel = model
	}
	return desc, nil
}

func parsePositiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", ErrMalformedInput, key, value)
	}
	return n, nil
}

// parseTimeout accepts either a Go duration string ("45s") or a plain
// number of seconds ("45").
func parseTimeout(value string) (time.Duration, error) {
	if n, err := strconv.Atoi(value); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("%w: request_timeout must be positive, got %q", ErrMalformedInput, value)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: request_timeout must be a duration, got %q", ErrMalformedInput, value)
	}
	return d, nil
}
