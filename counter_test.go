package main

import (
	"context"
	"testing"
	"time"
)

// stubExecutor returns canned responses and errors in order, repeating
// the last pair once exhausted. It records every invocation time.
type stubExecutor struct {
	responses []APIResponse
	errors    []error
	calls     int
	callTimes []time.Time
}

func (s *stubExecutor) Execute(ctx context.Context, req *APIRequest) (APIResponse, error) {
	idx := s.calls
	s.calls++
	s.callTimes = append(s.callTimes, time.Now())
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	var err error
	if len(s.errors) > 0 {
		eidx := s.calls - 1
		if eidx >= len(s.errors) {
			eidx = len(s.errors) - 1
		}
		err = s.errors[eidx]
	}
	return s.responses[idx], err
}

func okResponse(elapsed time.Duration) APIResponse {
	return APIResponse{
		StatusCode:  200,
		Headers:     map[string]string{},
		ElapsedTime: elapsed,
		Timestamp:   time.Now(),
	}
}

func testRequest(t *testing.T) *APIRequest {
	t.Helper()
	req, err := NewAPIRequest("http://localhost", "GET", nil, nil, nil, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestCallCounterCounts(t *testing.T) {
	stub := &stubExecutor{responses: []APIResponse{okResponse(0)}}
	counter := newCallCounter(stub)
	req := testRequest(t)

	for i := 0; i < 5; i++ {
		if _, err := counter.Execute(context.Background(), req); err != nil {
			t.Fatal(err)
		}
	}
	if c := counter.Count(); c != 5 {
		t.Error(c)
	}
}

func TestCallCounterReset(t *testing.T) {
	stub := &stubExecutor{responses: []APIResponse{okResponse(0)}}
	counter := newCallCounter(stub)
	req := testRequest(t)

	_, _ = counter.Execute(context.Background(), req)
	_, _ = counter.Execute(context.Background(), req)
	counter.Reset()
	if c := counter.Count(); c != 0 {
		t.Error(c)
	}
}
