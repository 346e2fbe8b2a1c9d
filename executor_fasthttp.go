package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

// fastHTTPExecutor is the fasthttp-backed executor. It issues a single
// exchange per call; fasthttp does not take a context, so interruption
// is observed between the exchange and its bookkeeping.
type fastHTTPExecutor struct {
	client *fasthttp.Client
}

func newFastHTTPExecutor(opts *ExecutorOpts) *fastHTTPExecutor {
	return &fastHTTPExecutor{
		client: &fasthttp.Client{
			TLSConfig: opts.TLSConfig,
		},
	}
}

func (e *fastHTTPExecutor) Execute(ctx context.Context, req *APIRequest) (APIResponse, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return APIResponse{}, err
	}

	target, err := requestURL(req)
	if err != nil {
		return capture(start, fmt.Sprintf("invalid url: %v", err)), nil
	}
	body, err := requestBody(req)
	if err != nil {
		return capture(start, fmt.Sprintf("body serialization: %v", err)), nil
	}

	freq := fasthttp.AcquireRequest()
	fresp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(freq)
	defer fasthttp.ReleaseResponse(fresp)

	freq.SetRequestURI(target)
	freq.Header.SetMethod(req.Method)
	for k, v := range req.Headers {
		freq.Header.Set(k, v)
	}
	if body != nil {
		freq.SetBody(body)
	}

	if err := e.client.DoTimeout(freq, fresp, req.Timeout); err != nil {
		if ctx.Err() != nil {
			return APIResponse{}, ctx.Err()
		}
		if errors.Is(err, fasthttp.ErrTimeout) {
			return capture(start, fmt.Sprintf("timeout after %v", req.Timeout)), nil
		}
		return capture(start, fmt.Sprintf("connection error: %v", err)), nil
	}

	headers := make(map[string]string)
	fresp.Header.VisitAll(func(k, v []byte) {
		headers[string(k)] = string(v)
	})

	r := APIResponse{
		StatusCode:  fresp.StatusCode(),
		Headers:     headers,
		Body:        string(fresp.Body()),
		ElapsedTime: time.Since(start),
		Timestamp:   time.Now(),
		Error:       statusError(fresp.StatusCode()),
	}
	log.Debug().
		Str("method", req.Method).
		Str("url", target).
		Int("status", r.StatusCode).
		Dur("elapsed", r.ElapsedTime).
		Msg("request completed")
	return r, nil
}
