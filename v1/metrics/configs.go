package metrics

// Config controls the metrics registry and its HTTP exposition server.
type Config struct {
	// Address is the listen address of the /metrics endpoint, e.g. ":9090".
	Address string

	// ServiceName is attached to every metric as the "service" label.
	ServiceName string

	// EnableDefaultCollectors registers the standard Go, process, and
	// build-info collectors alongside the module's own metrics.
	EnableDefaultCollectors bool
}
