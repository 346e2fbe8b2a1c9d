package main

import (
	"context"
	"time"

	"github.com/juju/ratelimit"
)

type Token uint64

const (
	brk Token = iota
	cont
)

// Limiter paces successive invocations. Pace blocks until the next
// invocation is allowed to start or the done channel fires.
type Limiter interface {
	Pace(<-chan struct{}) Token
}

type noopLimiter struct{}

func (n *noopLimiter) Pace(<-chan struct{}) Token {
	return cont
}

// bucketLimiter enforces a minimum spacing of 1/rate seconds between
// invocation starts. The token bucket has capacity one, so a single
// call passes immediately and every subsequent call waits out the
// remainder of the interval.
type bucketLimiter struct {
	limiter *ratelimit.Bucket
}

func newBucketLimiter(rate float64) Limiter {
	return &bucketLimiter{
		limiter: ratelimit.NewBucketWithRate(rate, 1),
	}
}

func (b *bucketLimiter) Pace(done <-chan struct{}) (res Token) {
	wd := b.limiter.Take(1)
	if wd <= 0 {
		return cont
	}

	timer := time.NewTimer(wd)
	defer timer.Stop()
	select {
	case <-timer.C:
		res = cont
	case <-done:
		res = brk
	}
	return
}

// rateLimitExecutor is the outermost chain layer: it paces the wrapped
// executor and aborts immediately when the context is cancelled.
type rateLimitExecutor struct {
	next    Executor
	limiter Limiter
}

func (rl *rateLimitExecutor) Execute(ctx context.Context, req *APIRequest) (APIResponse, error) {
	if rl.limiter.Pace(ctx.Done()) == brk {
		return APIResponse{}, ctx.Err()
	}
	return rl.next.Execute(ctx, req)
}
