package multimodal

import (
	"errors"
	"testing"
	"time"
)

func TestComputeStats_ZeroDurationGuard(t *testing.T) {
	results := []ItemResult{{Embedding: []float32{1}}, {Err: errors.New("x")}}

	stats := computeStats(results, 0)
	if stats.Throughput != 0 {
		t.Errorf("expected zero throughput for zero duration, got %v", stats.Throughput)
	}
	if stats.AvgDurationPerItem != 0 {
		t.Errorf("expected zero average, got %v", stats.AvgDurationPerItem)
	}
	if stats.Successful != 1 || stats.Failed != 1 || stats.TotalProcessed != 2 {
		t.Errorf("unexpected counts: %+v", stats)
	}
}

func TestComputeStats_Derived(t *testing.T) {
	results := []ItemResult{{}, {}, {}, {}}

	stats := computeStats(results, 2*time.Second)
	if stats.AvgDurationPerItem != 500*time.Millisecond {
		t.Errorf("expected 500ms average, got %v", stats.AvgDurationPerItem)
	}
	if stats.Throughput != 2 {
		t.Errorf("expected 2 items/sec, got %v", stats.Throughput)
	}
}
