// Package embedding offers the single-item and batch text embedding
// operations. It delegates the request/response cycle to the client's
// provider handle through the execution bridge and adds only the
// invariants the handle does not guarantee: client-name error context,
// request timeouts from the client's performance config, and the
// all-or-nothing contract for batches (partial results never escape this
// layer — contrast with the multimodal pipeline).
package embedding
