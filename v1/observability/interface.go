package observability

import "time"

// OperationContext describes a single completed operation for observers.
type OperationContext struct {
	// Component is the emitting subsystem ("embedding", "multimodal").
	Component string

	// Operation is the action performed ("embed_one", "embed_many",
	// "process").
	Operation string

	// Resource is the primary resource acted on, typically the client name.
	Resource string

	// SubResource further qualifies the resource, typically the model.
	SubResource string

	// Duration is the wall-clock time the operation took.
	Duration time.Duration

	// Error is the operation failure, or nil on success.
	Error error

	// Size is an operation-specific magnitude: item count for batch
	// operations, zero when not applicable.
	Size int64

	// Metadata carries optional free-form labels.
	Metadata map[string]string
}

// Observer receives operation notifications. Implementations must be safe
// for concurrent use; emitters call ObserveOperation from multiple
// goroutines.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}
