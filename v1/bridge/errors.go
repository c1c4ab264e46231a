package bridge

import "errors"

// Bridge errors. Both are fatal for the call that triggered them.
var (
	// ErrTaskPanic is returned when a task panics while executing on the
	// bridge. The panic is recovered so it never crosses the synchronous
	// boundary into the host engine.
	ErrTaskPanic = errors.New("bridge: task panicked")

	// ErrBridgeClosed is returned when a task is submitted after Close.
	ErrBridgeClosed = errors.New("bridge: closed")
)

// IsTaskPanicError checks if the error is a recovered task panic.
func IsTaskPanicError(err error) bool {
	return errors.Is(err, ErrTaskPanic)
}

// IsClosedError checks if the error is a closed-bridge error.
func IsClosedError(err error) bool {
	return errors.Is(err, ErrBridgeClosed)
}
