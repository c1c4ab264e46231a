// Package multimodal processes batches of raw image bytes through a
// two-stage pipeline: a describe stage that turns each image into text
// via the client's vision model, and an embed stage that turns that text
// into a vector via the client's embedding model.
//
// # Concurrency and ordering
//
// Tasks are admitted by a weighted semaphore sized to the client's
// MaxConcurrency; excess tasks queue until a slot frees. Tasks complete
// in arbitrary order, but each result is written to a pre-sized slot
// addressed by the item's input index, so result i always corresponds to
// input i.
//
// # Failure isolation
//
// Failures are captured per item — a timeout, provider error, or panic on
// one item never aborts the batch. Only batch-level preconditions abort
// the whole call: a client without a vision model fails immediately with
// ErrUnsupportedOperation before any task is scheduled. An empty input
// yields an empty result slice and an all-zero Stats record.
//
// The worst-case batch duration is bounded by
// ceil(items/MaxConcurrency) × RequestTimeout.
package multimodal
