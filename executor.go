package main

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Executor performs exactly one HTTP round trip. Ordinary transport and
// HTTP-status failures are captured inside the APIResponse; the error
// return is reserved for executor-level faults and interruption, which
// are the only conditions the retry layer acts on.
type Executor interface {
	Execute(ctx context.Context, req *APIRequest) (APIResponse, error)
}

type ExecutorOpts struct {
	TLSConfig *tls.Config
}

func MakeExecutor(clientType ClientTyp, opts *ExecutorOpts) Executor {
	var ex Executor
	switch clientType {
	case fhttp:
		ex = newFastHTTPExecutor(opts)
	case nhttp:
		fallthrough
	default:
		ex = newNetHTTPExecutor(opts)
	}
	return ex
}

// requestURL appends the request params to the URL as a query string.
func requestURL(req *APIRequest) (string, error) {
	if len(req.Params) == 0 {
		return req.URL, nil
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range req.Params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// requestBody serializes the body as JSON and fills in a default
// Content-Type header unless the caller already set one.
func requestBody(req *APIRequest) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, err
	}
	if !hasHeader(req.Headers, "Content-Type") {
		req.Headers["Content-Type"] = "application/json"
	}
	return data, nil
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// capture wraps a failure observed before or during the exchange into a
// response carrying no HTTP status.
func capture(start time.Time, msg string) APIResponse {
	return APIResponse{
		StatusCode:  0,
		Headers:     map[string]string{},
		Body:        "",
		ElapsedTime: time.Since(start),
		Timestamp:   time.Now(),
		Error:       msg,
	}
}

// statusError renders the human readable summary attached to responses
// with an error status, e.g. "HTTP 500: Internal Server Error".
func statusError(code int) string {
	if code < 400 {
		return ""
	}
	return fmt.Sprintf("HTTP %d: %s", code, http.StatusText(code))
}

type netHTTPExecutor struct {
	client *http.Client
}

func newNetHTTPExecutor(opts *ExecutorOpts) *netHTTPExecutor {
	return &netHTTPExecutor{
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: opts.TLSConfig,
			},
		},
	}
}

func (e *netHTTPExecutor) Execute(ctx context.Context, req *APIRequest) (APIResponse, error) {
	start := time.Now()

	target, err := requestURL(req)
	if err != nil {
		return capture(start, fmt.Sprintf("invalid url: %v", err)), nil
	}
	body, err := requestBody(req)
	if err != nil {
		return capture(start, fmt.Sprintf("body serialization: %v", err)), nil
	}

	rctx, cancel := context.WithTimeout(ctx, req.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	hreq, err := http.NewRequestWithContext(rctx, req.Method, target, reader)
	if err != nil {
		return capture(start, fmt.Sprintf("%T: %v", err, err)), nil
	}
	for k, v := range req.Headers {
		hreq.Header.Set(k, v)
	}

	resp, err := e.client.Do(hreq)
	if err != nil {
		if ctx.Err() != nil {
			return APIResponse{}, ctx.Err()
		}
		return capture(start, transportError(err, req.Timeout)), nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return APIResponse{}, ctx.Err()
		}
		return capture(start, fmt.Sprintf("body read: %v", err)), nil
	}

	headers := make(map[string]string, len(resp.Header))
	for k, vals := range resp.Header {
		headers[k] = strings.Join(vals, ", ")
	}

	r := APIResponse{
		StatusCode:  resp.StatusCode,
		Headers:     headers,
		Body:        string(raw),
		ElapsedTime: time.Since(start),
		Timestamp:   time.Now(),
		Error:       statusError(resp.StatusCode),
	}
	log.Debug().
		Str("method", req.Method).
		Str("url", target).
		Int("status", r.StatusCode).
		Dur("elapsed", r.ElapsedTime).
		Msg("request completed")
	return r, nil
}

func transportError(err error, timeout time.Duration) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("timeout after %v", timeout)
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if uerr.Timeout() {
			return fmt.Sprintf("timeout after %v", timeout)
		}
		return fmt.Sprintf("connection error: %v", uerr.Err)
	}
	return fmt.Sprintf("%T: %v", err, err)
}
