package multimodal

import "time"

// ItemResult is the per-item outcome of a pipeline run. The slot index in
// the result slice always corresponds to the item's position in the input,
// regardless of completion order. Exactly one of Embedding and Err is set.
type ItemResult struct {
	// Embedding is the item's vector on success.
	Embedding []float32

	// Err describes the failure, including which stage failed.
	Err error
}

// Failed reports whether the item failed.
func (r ItemResult) Failed() bool { return r.Err != nil }

// Stats aggregates one pipeline invocation. It is computed after every
// task has finished and is never persisted.
type Stats struct {
	// TotalProcessed is the number of input items. Always equals
	// Successful + Failed.
	TotalProcessed int

	// Successful is the number of items that produced an embedding.
	Successful int

	// Failed is the number of items that failed in either stage.
	Failed int

	// TotalDuration is the wall-clock time of the whole batch.
	TotalDuration time.Duration

	// AvgDurationPerItem is TotalDuration divided by TotalProcessed.
	AvgDurationPerItem time.Duration

	// Throughput is items per second over the whole batch.
	Throughput float64
}

// computeStats derives the aggregate record from per-item outcomes and the
// batch wall-clock time. Zero-length batches and zero durations yield zero
// values, never a division by zero.
func computeStats(results []ItemResult, elapsed time.Duration) Stats {
	stats := Stats{
		TotalProcessed: len(results),
		TotalDuration:  elapsed,
	}
	for _, r := range results {
		if r.Failed() {
			stats.Failed++
		} else {
			stats.Successful++
		}
	}
	if stats.TotalProcessed > 0 {
		stats.AvgDurationPerItem = elapsed / time.Duration(stats.TotalProcessed)
	}
	if secs := elapsed.Seconds(); secs > 0 && stats.TotalProcessed > 0 {
		stats.Throughput = float64(stats.TotalProcessed) / secs
	}
	return stats
}
