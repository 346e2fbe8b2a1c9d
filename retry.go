package main

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const backoffFactor = 2.0

// retryExecutor re-invokes the wrapped executor when it returns an
// error. Responses carrying an HTTP error status are not errors and
// pass through untouched. Waits start at delay and double after every
// failed attempt; the last error is returned once attempts run out.
type retryExecutor struct {
	next     Executor
	attempts int
	delay    time.Duration
}

func (r *retryExecutor) Execute(ctx context.Context, req *APIRequest) (APIResponse, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.delay
	bo.RandomizationFactor = 0
	bo.Multiplier = backoffFactor
	bo.MaxInterval = time.Duration(1<<62 - 1)
	bo.MaxElapsedTime = 0

	var resp APIResponse
	op := func() error {
		var err error
		resp, err = r.next.Execute(ctx, req)
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().
			Err(err).
			Dur("wait", wait).
			Msg("request failed, retrying")
	}

	err := backoff.RetryNotify(
		op,
		backoff.WithContext(
			backoff.WithMaxRetries(bo, uint64(r.attempts-1)), ctx),
		notify,
	)
	return resp, err
}
