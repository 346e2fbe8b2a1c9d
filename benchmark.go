package main

import (
	"sort"
	"time"
)

// BenchmarkResult is the immutable aggregate of one benchmark run.
type BenchmarkResult struct {
	// ID identifies the run in verbose output and user templates.
	ID  string
	URL string

	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int

	AvgTime    time.Duration
	MinTime    time.Duration
	MaxTime    time.Duration
	MedianTime time.Duration

	// TotalDuration is the wall-clock time of the whole run, including
	// rate-limit pauses and retry waits.
	TotalDuration time.Duration

	// Responses holds every individual response in call order.
	Responses []APIResponse

	// Errors aggregates captured error messages by frequency.
	Errors *ErrorMap
}

// SuccessRate is the percentage of successful requests, 0 for an empty
// run.
func (r BenchmarkResult) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0.0
	}
	return float64(r.SuccessfulRequests) / float64(r.TotalRequests) * 100
}

// RequestsPerSecond is the overall throughput, 0 for a zero-length run.
func (r BenchmarkResult) RequestsPerSecond() float64 {
	if r.TotalDuration == 0 {
		return 0.0
	}
	return float64(r.TotalRequests) / r.TotalDuration.Seconds()
}

// summarizeTimes reduces per-call elapsed times to avg/min/max/median.
// All values are zero when there are no samples. The median of an even
// sample count is the mean of the middle pair.
func summarizeTimes(times []time.Duration) (avg, min, max, median time.Duration) {
	if len(times) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]time.Duration, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, t := range sorted {
		sum += t
	}
	avg = sum / time.Duration(len(sorted))
	min = sorted[0]
	max = sorted[len(sorted)-1]

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}
	return avg, min, max, median
}

// latencyPercentiles reports the given quantiles over the per-call
// elapsed times using nearest-rank selection.
func latencyPercentiles(times []time.Duration, quantiles []float64) []time.Duration {
	if len(times) == 0 {
		return nil
	}
	sorted := make([]time.Duration, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	out := make([]time.Duration, 0, len(quantiles))
	for _, q := range quantiles {
		idx := int(q*float64(len(sorted))+0.5) - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		out = append(out, sorted[idx])
	}
	return out
}
