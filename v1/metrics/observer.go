package metrics

import (
	"strconv"

	"github.com/embedgate/embedgate/v1/observability"
)

// ObserveOperation implements observability.Observer. Every operation
// increments the operations counter and feeds the duration histogram;
// multimodal runs additionally record per-item success and failure counts
// carried in the metadata.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	status := "success"
	if op.Error != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(op.Component, op.Operation, status).Inc()
	m.operationDuration.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())

	m.addItems("success", op.Metadata["successful"])
	m.addItems("failure", op.Metadata["failed"])
}

func (m *Metrics) addItems(outcome, count string) {
	if count == "" {
		return
	}
	n, err := strconv.Atoi(count)
	if err != nil || n <= 0 {
		return
	}
	m.itemsProcessed.WithLabelValues(outcome).Add(float64(n))
}

var _ observability.Observer = (*Metrics)(nil)
