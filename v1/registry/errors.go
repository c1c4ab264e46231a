package registry

import "errors"

var (
	// ErrClientNotFound is returned when an operation references a name
	// that was never registered (or was torn down).
	ErrClientNotFound = errors.New("registry: client not found")
)

// IsClientNotFoundError checks if the error is a client-not-found error.
func IsClientNotFoundError(err error) bool {
	return errors.Is(err, ErrClientNotFound)
}
