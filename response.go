package main

import "time"

// APIResponse is the outcome of one request execution. A StatusCode of
// zero means no HTTP response was obtained at all, e.g. the connection
// failed or timed out; the Error field then carries the reason.
// Instances are treated as immutable once returned.
type APIResponse struct {
	StatusCode  int
	Headers     map[string]string
	Body        string
	ElapsedTime time.Duration
	Timestamp   time.Time
	Error       string
}

// Success reports whether the exchange completed with a 2xx status and
// no captured error.
func (r APIResponse) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300 && r.Error == ""
}

// ElapsedMs returns the elapsed wall-clock time in milliseconds.
func (r APIResponse) ElapsedMs() float64 {
	return r.ElapsedTime.Seconds() * 1000
}
