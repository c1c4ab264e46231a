// Package metrics exposes the module's Prometheus metrics and implements
// the observability.Observer contract.
//
// Three metric families are maintained:
//
//   - embedding_operations_total{component, operation, status}
//   - embedding_operation_duration_seconds{component, operation}
//   - pipeline_items_processed_total{outcome}
//
// Each instance owns an isolated registry, labeled with a constant
// "service" label, and an HTTP server exposing /metrics for scraping. The
// FXModule manages the server lifecycle.
package metrics
