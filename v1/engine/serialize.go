package engine

import (
	"encoding/json"

	"github.com/embedgate/embedgate/v1/multimodal"
)

// MultimodalResult is the structured record returned to the host binding
// layer for a pipeline run: the ordered per-item results plus the
// aggregate statistics.
type MultimodalResult struct {
	Results []multimodal.ItemResult
	Stats   multimodal.Stats
}

type wireEmbedding struct {
	Embedding []float32 `json:"embedding"`
}

type wireError struct {
	Error string `json:"error"`
}

type wireStats struct {
	TotalProcessed        int     `json:"total_processed"`
	Successful            int     `json:"successful"`
	Failed                int     `json:"failed"`
	TotalDurationMs       float64 `json:"total_duration_ms"`
	AvgDurationPerItemMs  float64 `json:"avg_duration_per_item_ms"`
	ThroughputItemsPerSec float64 `json:"throughput_items_per_sec"`
}

// MarshalJSON serializes the result as a two-field record: an ordered
// list where each entry is either an embedding or an error marker, and
// the six-field statistics record.
func (r *MultimodalResult) MarshalJSON() ([]byte, error) {
	items := make([]interface{}, len(r.Results))
	for i, res := range r.Results {
		if res.Failed() {
			items[i] = wireError{Error: res.Err.Error()}
			continue
		}
		embedding := res.Embedding
		if embedding == nil {
			embedding = []float32{}
		}
		items[i] = wireEmbedding{Embedding: embedding}
	}

	return json.Marshal(struct {
		Results []interface{} `json:"results"`
		Stats   wireStats     `json:"stats"`
	}{
		Results: items,
		Stats: wireStats{
			TotalProcessed:        r.Stats.TotalProcessed,
			Successful:            r.Stats.Successful,
			Failed:                r.Stats.Failed,
			TotalDurationMs:       float64(r.Stats.TotalDuration.Microseconds()) / 1000,
			AvgDurationPerItemMs:  float64(r.Stats.AvgDurationPerItem.Microseconds()) / 1000,
			ThroughputItemsPerSec: r.Stats.Throughput,
		},
	})
}
