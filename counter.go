package main

import (
	"context"
	"sync/atomic"
)

// callCounter counts invocations of the executor it wraps. It sits at
// the innermost position of the chain, so retried attempts are counted
// individually.
type callCounter struct {
	next  Executor
	count uint64
}

func newCallCounter(next Executor) *callCounter {
	return &callCounter{next: next}
}

func (c *callCounter) Execute(ctx context.Context, req *APIRequest) (APIResponse, error) {
	atomic.AddUint64(&c.count, 1)
	return c.next.Execute(ctx, req)
}

func (c *callCounter) Count() uint64 {
	return atomic.LoadUint64(&c.count)
}

func (c *callCounter) Reset() {
	atomic.StoreUint64(&c.count, 0)
}
