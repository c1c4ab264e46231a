package embedding

import "errors"

var (
	// ErrNoInput is returned when a batch operation receives no texts.
	ErrNoInput = errors.New("embedding: no input texts")
)
