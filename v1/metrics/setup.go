package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the Prometheus registry and the HTTP server exposing it.
// It also implements observability.Observer, translating operation
// notifications from the embedding and multimodal layers into counters
// and histograms.
type Metrics struct {
	// Server exposes the /metrics endpoint.
	Server *http.Server

	// Registry is the isolated Prometheus registry for this instance.
	// Isolation prevents metric collisions when several services share a
	// process.
	Registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	itemsProcessed    *prometheus.CounterVec
}

// NewMetrics builds an isolated registry, registers the module's metrics
// under a constant service label, and prepares (but does not start) the
// exposition server.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{Registry: registry}

	m.operationsTotal = createCounterVec(
		"embedding_operations_total",
		"Total number of embedding operations by component, operation, and status",
		[]string{"component", "operation", "status"},
	)
	m.operationDuration = createHistogramVec(
		"embedding_operation_duration_seconds",
		"Duration of embedding operations in seconds",
		[]string{"component", "operation"},
		prometheus.DefBuckets,
	)
	m.itemsProcessed = createCounterVec(
		"pipeline_items_processed_total",
		"Per-item outcomes of multimodal pipeline runs",
		[]string{"outcome"},
	)

	wrapped.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.itemsProcessed,
	)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	return m
}
