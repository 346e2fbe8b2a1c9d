package main

import "time"

// TestConfig controls the behaviors layered around request execution.
type TestConfig struct {
	RetryAttempts int
	RetryDelay    time.Duration
	// RateLimit is the allowed request rate in requests per second.
	// nil disables rate limiting altogether.
	RateLimit *float64
	// CacheResponses is declared for configuration compatibility but no
	// caching is implemented anywhere in the pipeline.
	CacheResponses  bool
	VerifySSL       bool
	FollowRedirects bool

	ClientType ClientTyp
	CertPath   string
	KeyPath    string
}

// DefaultTestConfig mirrors the defaults of the CLI flags.
func DefaultTestConfig() *TestConfig {
	return &TestConfig{
		RetryAttempts:   3,
		RetryDelay:      500 * time.Millisecond,
		VerifySSL:       true,
		FollowRedirects: true,
		ClientType:      nhttp,
	}
}

func (c *TestConfig) CheckArgs() error {
	checks := []func() error{
		c.checkRetry,
		c.checkRateLimit,
		c.checkCertPaths,
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}

	return nil
}

func (c *TestConfig) checkRetry() error {
	if c.RetryAttempts < 1 {
		return errInvalidRetryAttempts
	}
	if c.RetryDelay < 0 {
		return errNegativeRetryDelay
	}
	return nil
}

func (c *TestConfig) checkRateLimit() error {
	if c.RateLimit != nil && *c.RateLimit <= 0 {
		return errZeroRateLimit
	}
	return nil
}

func (c *TestConfig) checkCertPaths() error {
	if c.CertPath != "" && c.KeyPath == "" {
		return errNoPathToKey
	} else if c.CertPath == "" && c.KeyPath != "" {
		return errNoPathToCert
	}
	return nil
}

type ClientTyp int

const (
	nhttp ClientTyp = iota
	fhttp
)

func (ct ClientTyp) String() string {
	switch ct {
	case nhttp:
		return "net/http"
	case fhttp:
		return "FastHTTP"
	}
	return "unknown client"
}
