package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newStubClient(t *testing.T, config *TestConfig, stub Executor) *APIClient {
	t.Helper()
	if err := config.CheckArgs(); err != nil {
		t.Fatal(err)
	}
	return newAPIClient(config, stub)
}

func TestClientRejectsInvalidConfig(t *testing.T) {
	_, err := NewAPIClient(&TestConfig{RetryAttempts: 0})
	if !errors.Is(err, errInvalidRetryAttempts) {
		t.Error(err)
	}
}

func TestClientDefaultsConfig(t *testing.T) {
	client, err := NewAPIClient(nil)
	if err != nil {
		t.Fatal(err)
	}
	if client.config.RetryAttempts != 3 {
		t.Error(client.config)
	}
}

func TestMakeRequestPassesThrough(t *testing.T) {
	stub := &stubExecutor{responses: []APIResponse{okResponse(time.Millisecond)}}
	client := newStubClient(t, DefaultTestConfig(), stub)

	resp, err := client.MakeRequest(context.Background(), testRequest(t))
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success() {
		t.Error(resp)
	}
}

func TestCallCountIncludesRetriedAttempts(t *testing.T) {
	boom := errors.New("boom")
	stub := &stubExecutor{
		responses: []APIResponse{{}, {}, okResponse(time.Millisecond)},
		errors:    []error{boom, boom, nil},
	}
	config := DefaultTestConfig()
	config.RetryAttempts = 3
	config.RetryDelay = time.Millisecond
	client := newStubClient(t, config, stub)

	if _, err := client.MakeRequest(context.Background(), testRequest(t)); err != nil {
		t.Fatal(err)
	}
	// one logical request, three executor invocations
	if c := client.CallCount(); c != 3 {
		t.Error(c)
	}
	client.ResetCounter()
	if c := client.CallCount(); c != 0 {
		t.Error(c)
	}
}

func TestClientSkipsRetryLayerForSingleAttempt(t *testing.T) {
	boom := errors.New("boom")
	stub := &stubExecutor{responses: []APIResponse{{}}, errors: []error{boom}}
	config := DefaultTestConfig()
	config.RetryAttempts = 1
	client := newStubClient(t, config, stub)

	if _, err := client.MakeRequest(context.Background(), testRequest(t)); !errors.Is(err, boom) {
		t.Error(err)
	}
	if stub.calls != 1 {
		t.Error(stub.calls)
	}
}

func TestClientRateLimitsLogicalRequests(t *testing.T) {
	stub := &stubExecutor{responses: []APIResponse{okResponse(0)}}
	rate := 10.0 // 100ms minimum spacing
	config := DefaultTestConfig()
	config.RateLimit = &rate
	client := newStubClient(t, config, stub)
	req := testRequest(t)

	ctx := context.Background()
	if _, err := client.MakeRequest(ctx, req); err != nil {
		t.Fatal(err)
	}
	if _, err := client.MakeRequest(ctx, req); err != nil {
		t.Fatal(err)
	}
	spacing := stub.callTimes[1].Sub(stub.callTimes[0])
	if spacing < 100*time.Millisecond {
		t.Errorf("calls spaced %v apart, want at least 100ms", spacing)
	}
}

func TestBenchmarkAggregation(t *testing.T) {
	elapsed := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
		400 * time.Millisecond,
	}
	responses := make([]APIResponse, 0, len(elapsed))
	for _, d := range elapsed {
		responses = append(responses, okResponse(d))
	}
	// third response fails with a captured transport error
	responses[2] = APIResponse{
		StatusCode:  0,
		ElapsedTime: elapsed[2],
		Error:       "connection error: connection refused",
	}
	stub := &stubExecutor{responses: responses}
	config := DefaultTestConfig()
	config.RetryAttempts = 1
	client := newStubClient(t, config, stub)

	result, err := client.Benchmark(context.Background(), testRequest(t), 4)
	if err != nil {
		t.Fatal(err)
	}

	if result.TotalRequests != 4 {
		t.Error(result.TotalRequests)
	}
	if result.SuccessfulRequests != 3 || result.FailedRequests != 1 {
		t.Error(result.SuccessfulRequests, result.FailedRequests)
	}
	if result.AvgTime != 250*time.Millisecond {
		t.Error("avg", result.AvgTime)
	}
	if result.MedianTime != 250*time.Millisecond {
		t.Error("median", result.MedianTime)
	}
	if result.MinTime != 100*time.Millisecond {
		t.Error("min", result.MinTime)
	}
	if result.MaxTime != 400*time.Millisecond {
		t.Error("max", result.MaxTime)
	}
	if sr := result.SuccessRate(); sr != 75.0 {
		t.Error(sr)
	}
	if len(result.Responses) != 4 {
		t.Error(len(result.Responses))
	}
	if c := result.Errors.Get("connection error: connection refused"); c != 1 {
		t.Error(c)
	}
	if result.ID == "" {
		t.Error("benchmark result should carry a run id")
	}
	if result.TotalDuration <= 0 {
		t.Error(result.TotalDuration)
	}
}

func TestBenchmarkZeroRequests(t *testing.T) {
	stub := &stubExecutor{responses: []APIResponse{okResponse(0)}}
	client := newStubClient(t, DefaultTestConfig(), stub)

	result, err := client.Benchmark(context.Background(), testRequest(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	if result.TotalRequests != 0 {
		t.Error(result.TotalRequests)
	}
	if sr := result.SuccessRate(); sr != 0.0 {
		t.Error(sr)
	}
	if result.AvgTime != 0 || result.MedianTime != 0 ||
		result.MinTime != 0 || result.MaxTime != 0 {
		t.Error(result)
	}
	if stub.calls != 0 {
		t.Error(stub.calls)
	}
}

func TestBenchmarkReportsProgress(t *testing.T) {
	stub := &stubExecutor{responses: []APIResponse{okResponse(0)}}
	client := newStubClient(t, DefaultTestConfig(), stub)

	var seen []int
	client.Progress = func(done, total int) {
		if total != 3 {
			t.Error(total)
		}
		seen = append(seen, done)
	}
	if _, err := client.Benchmark(context.Background(), testRequest(t), 3); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Error(seen)
	}
}

func TestBenchmarkStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stub := &cancellingExecutor{cancel: cancel, after: 2}
	client := newStubClient(t, DefaultTestConfig(), stub)

	result, err := client.Benchmark(ctx, testRequest(t), 100)
	if !errors.Is(err, context.Canceled) {
		t.Error(err)
	}
	if len(result.Responses) >= 100 {
		t.Error("benchmark should stop early on cancellation")
	}
}

// cancellingExecutor cancels the run context after a fixed number of
// calls and then reports the cancellation like a real executor would.
type cancellingExecutor struct {
	cancel context.CancelFunc
	after  int
	calls  int
}

func (c *cancellingExecutor) Execute(ctx context.Context, req *APIRequest) (APIResponse, error) {
	c.calls++
	if c.calls > c.after {
		c.cancel()
	}
	if ctx.Err() != nil {
		return APIResponse{}, ctx.Err()
	}
	return okResponse(time.Millisecond), nil
}
