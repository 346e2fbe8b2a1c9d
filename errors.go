package main

import (
	"errors"
	"fmt"
)

var (
	errInvalidURL           = errors.New("url must start with http:// or https://")
	errInvalidTimeout       = errors.New("timeout must be positive")
	errInvalidRetryAttempts = errors.New("retry attempts must be at least 1")
	errNegativeRetryDelay   = errors.New("retry delay must be non-negative")
	errZeroRateLimit        = errors.New("rate limit must be positive")
	errNoPathToKey          = errors.New("no Key file path provided")
	errNoPathToCert         = errors.New("no Cert file path provided")
	errEmptyPrintSpec       = errors.New("empty print spec")
	errInvalidNumberOfReqs  = errors.New("invalid number of requests")
)

type InvalidHTTPMethodError struct {
	method string
}

func (i *InvalidHTTPMethodError) Error() string {
	return fmt.Sprintf("Unknown HTTP method: %v", i.method)
}
