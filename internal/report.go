// Package internal holds the data structures handed to the output
// templates. They carry no behavior so user-defined templates can rely
// on a stable shape.
package internal

import "time"

type Header struct {
	Key   string
	Value string
}

// Spec describes the test that was run.
type Spec struct {
	URL     string
	Method  string
	Headers []Header
	Timeout time.Duration

	RetryAttempts int
	RetryDelay    time.Duration
	RateLimit     *float64

	NumRequests uint64
	ClientType  string
	VerifySSL   bool
}

// SingleResult reports the outcome of one request.
type SingleResult struct {
	StatusCode int
	Success    bool
	ElapsedMs  float64
	Headers    map[string]string
	Body       string
	Error      string
}

type Percentile struct {
	Quantile float64
	ValueUs  float64
}

type ErrorWithCount struct {
	Error string
	Count uint64
}

// BenchmarkStats reports the aggregate outcome of a benchmark run.
type BenchmarkStats struct {
	RunID string

	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	SuccessRate        float64

	AvgTimeMs    float64
	MedianTimeMs float64
	MinTimeMs    float64
	MaxTimeMs    float64

	TotalDurationSec  float64
	RequestsPerSecond float64

	Percentiles []Percentile
	Errors      []ErrorWithCount
}

// TestInfo is the root template datum. Exactly one of Single and
// Benchmark is set.
type TestInfo struct {
	Spec      Spec
	Single    *SingleResult
	Benchmark *BenchmarkStats
}
