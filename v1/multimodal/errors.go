package multimodal

import "errors"

var (
	// ErrUnsupportedOperation is returned when the client's descriptor
	// carries no vision model. The check happens before any task is
	// scheduled, so no provider request is ever issued for such a client.
	ErrUnsupportedOperation = errors.New("multimodal: client has no vision model")
)

// IsUnsupportedOperationError checks if the error is an
// unsupported-operation error.
func IsUnsupportedOperationError(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}
