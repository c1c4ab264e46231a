// Package observability defines the Observer contract through which the
// embedding and multimodal packages report completed operations. The
// metrics package provides a Prometheus-backed implementation; tests use
// hand-rolled recorders.
package observability
