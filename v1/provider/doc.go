// Package provider constructs reusable client handles over the external
// provider library. A Handle wraps one configured OpenAI-compatible client
// and exposes the three operations the rest of the module needs: Embed,
// EmbedBatch, and Describe (vision chat for the multimodal pipeline).
//
// Wire-level concerns — request shapes, authentication headers, retries —
// belong to the underlying library. This package only selects the base
// URL for the descriptor's provider, applies the endpoint override and
// request timeout, and normalizes responses (index-faithful batch
// reassembly, empty-response detection).
package provider
