package provider

import "errors"

// Provider-response errors. Transport, auth, and quota failures come from
// the underlying client library and are wrapped with provider context.
var (
	// ErrNoEmbedding is returned when a response carries no embedding data.
	ErrNoEmbedding = errors.New("provider: no embedding in response")

	// ErrNoDescription is returned when a vision response carries no text.
	ErrNoDescription = errors.New("provider: no description generated")

	// ErrVisionModelNotSet is returned when Describe is called on a handle
	// whose descriptor has no vision model.
	ErrVisionModelNotSet = errors.New("provider: vision model not configured")
)
