package config

import "errors"

// Resolution errors. All are surfaced synchronously at registration time,
// never deferred to first use.
var (
	// ErrUnknownProvider is returned when the provider tag is not in the
	// closed set of supported providers.
	ErrUnknownProvider = errors.New("config: unknown provider")

	// ErrMalformedInput is returned when the configuration matches none of
	// the accepted grammar forms.
	ErrMalformedInput = errors.New("config: malformed input")

	// ErrMissingCredential is returned when the provider requires a
	// credential and neither the configuration nor the environment
	// supplies one.
	ErrMissingCredential = errors.New("config: missing credential")
)

// IsUnknownProviderError checks if the error is an unknown-provider error.
func IsUnknownProviderError(err error) bool {
	return errors.Is(err, ErrUnknownProvider)
}

// IsMalformedInputError checks if the error is a malformed-input error.
func IsMalformedInputError(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsMissingCredentialError checks if the error is a missing-credential error.
func IsMissingCredentialError(err error) bool {
	return errors.Is(err, ErrMissingCredential)
}
