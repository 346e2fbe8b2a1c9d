package main

import (
	"sort"
	"strings"
	"time"
)

// httpMethods must be sorted, artifact of sort.SearchStrings.
var httpMethods = []string{
	"DELETE", "GET", "HEAD", "OPTIONS", "PATCH", "POST", "PUT",
}

func AllowedHTTPMethod(method string) bool {
	i := sort.SearchStrings(httpMethods, method)
	return i < len(httpMethods) && httpMethods[i] == method
}

// APIRequest describes a single HTTP request to issue. It is validated
// once, by NewAPIRequest, and not mutated afterwards except that the
// executor fills in a default Content-Type header when a body is set.
type APIRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Params  map[string]string
	Body    interface{}
	Timeout time.Duration
}

// NewAPIRequest validates the request configuration and normalizes the
// method to upper case. Everything else is rejected rather than fixed up.
func NewAPIRequest(
	url, method string,
	headers, params map[string]string,
	body interface{},
	timeout time.Duration,
) (*APIRequest, error) {
	if method == "" {
		method = "GET"
	}
	method = strings.ToUpper(method)
	if !AllowedHTTPMethod(method) {
		return nil, &InvalidHTTPMethodError{method: method}
	}
	if timeout <= 0 {
		return nil, errInvalidTimeout
	}
	if !strings.HasPrefix(url, "http://") &&
		!strings.HasPrefix(url, "https://") {
		return nil, errInvalidURL
	}
	if headers == nil {
		headers = make(map[string]string)
	}
	if params == nil {
		params = make(map[string]string)
	}
	return &APIRequest{
		URL:     url,
		Method:  method,
		Headers: headers,
		Params:  params,
		Body:    body,
		Timeout: timeout,
	}, nil
}
