package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
)

// APIClient composes the execution chain around a low-level executor
// per its TestConfig and drives single requests and benchmark runs.
// The call counter and the rate limiter's pacing state are the only
// state kept across calls; one client drives one sequential stream of
// requests.
type APIClient struct {
	config  *TestConfig
	counter *callCounter
	limiter Limiter

	// Progress, when set, is invoked after every completed benchmark
	// request with the number of requests done so far and the total.
	Progress func(done, total int)
}

// NewAPIClient validates the configuration, builds the configured
// executor and returns a ready client.
func NewAPIClient(config *TestConfig) (*APIClient, error) {
	if config == nil {
		config = DefaultTestConfig()
	}
	if err := config.CheckArgs(); err != nil {
		return nil, err
	}
	tlsConfig, err := generateTLSConfig(config)
	if err != nil {
		return nil, err
	}
	executor := MakeExecutor(config.ClientType, &ExecutorOpts{
		TLSConfig: tlsConfig,
	})
	return newAPIClient(config, executor), nil
}

func newAPIClient(config *TestConfig, executor Executor) *APIClient {
	c := &APIClient{
		config:  config,
		counter: newCallCounter(executor),
		limiter: &noopLimiter{},
	}
	if config.RateLimit != nil {
		c.limiter = newBucketLimiter(*config.RateLimit)
	}
	return c
}

// chain assembles the decorators from the current config, innermost to
// outermost: counter, retry, rate limit.
func (c *APIClient) chain() Executor {
	var ex Executor = c.counter
	if c.config.RetryAttempts > 1 {
		ex = &retryExecutor{
			next:     ex,
			attempts: c.config.RetryAttempts,
			delay:    c.config.RetryDelay,
		}
	}
	if c.config.RateLimit != nil {
		ex = &rateLimitExecutor{next: ex, limiter: c.limiter}
	}
	return ex
}

// MakeRequest executes one request through the configured chain.
func (c *APIClient) MakeRequest(ctx context.Context, req *APIRequest) (APIResponse, error) {
	return c.chain().Execute(ctx, req)
}

// Benchmark issues numRequests requests strictly sequentially and
// reduces the responses to summary statistics. A partial result and
// the context error are returned when the run is interrupted.
func (c *APIClient) Benchmark(ctx context.Context, req *APIRequest, numRequests int) (BenchmarkResult, error) {
	log.Info().
		Str("url", req.URL).
		Int("requests", numRequests).
		Msg("benchmark started")

	responses := make([]APIResponse, 0, numRequests)
	start := time.Now()

	var runErr error
	for i := 0; i < numRequests; i++ {
		resp, err := c.MakeRequest(ctx, req)
		if err != nil {
			runErr = err
			break
		}
		responses = append(responses, resp)
		if c.Progress != nil {
			c.Progress(len(responses), numRequests)
		}
	}

	totalDuration := time.Since(start)

	successful := 0
	errorMap := NewErrorMap()
	times := make([]time.Duration, 0, len(responses))
	for _, r := range responses {
		if r.Success() {
			successful++
		}
		if r.Error != "" {
			errorMap.Add(r.Error)
		}
		times = append(times, r.ElapsedTime)
	}
	avg, min, max, median := summarizeTimes(times)

	result := BenchmarkResult{
		ID:                 uuid.Must(uuid.NewV4()).String(),
		URL:                req.URL,
		TotalRequests:      numRequests,
		SuccessfulRequests: successful,
		FailedRequests:     len(responses) - successful,
		AvgTime:            avg,
		MinTime:            min,
		MaxTime:            max,
		MedianTime:         median,
		TotalDuration:      totalDuration,
		Responses:          responses,
		Errors:             errorMap,
	}
	return result, runErr
}

// CallCount reports how many times the low-level executor ran,
// including retried attempts.
func (c *APIClient) CallCount() uint64 {
	return c.counter.Count()
}

// ResetCounter sets the call count back to zero.
func (c *APIClient) ResetCounter() {
	c.counter.Reset()
}
