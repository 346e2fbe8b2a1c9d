package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func parseArgs(t *testing.T, args ...string) Config {
	t.Helper()
	cfg, err := NewKingpinParser().Parse(append([]string{programName}, args...))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestPummelRejectsInvalidRequest(t *testing.T) {
	cfg := parseArgs(t, "ftp://localhost")
	if _, err := NewPummel(cfg); err == nil {
		t.Error("ftp url should fail validation")
	}

	cfg = parseArgs(t, "-X", "FROB", "http://localhost")
	if _, err := NewPummel(cfg); err == nil {
		t.Error("unknown method should fail validation")
	}

	cfg = parseArgs(t, "--retry", "0", "http://localhost")
	if _, err := NewPummel(cfg); err == nil {
		t.Error("zero retry attempts should fail validation")
	}

	cfg = parseArgs(t, "--rate-limit", "0", "http://localhost")
	if _, err := NewPummel(cfg); err == nil {
		t.Error("zero rate limit should fail validation")
	}
}

func TestPummelSingleRequestJSONOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"ok":true}`)
		}))
	defer server.Close()

	cfg := parseArgs(t, "--json", server.URL)
	p, err := NewPummel(cfg)
	if err != nil {
		t.Fatal(err)
	}
	out := new(bytes.Buffer)
	p.RedirectOutputTo(out)

	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		StatusCode int               `json:"status_code"`
		Success    bool              `json:"success"`
		ElapsedMs  float64           `json:"elapsed_ms"`
		Headers    map[string]string `json:"headers"`
		Body       string            `json:"body"`
		Error      *string           `json:"error"`
	}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatal(err, out.String())
	}
	if decoded.StatusCode != 200 || !decoded.Success {
		t.Error(decoded)
	}
	if decoded.Body != `{"ok":true}` {
		t.Error(decoded.Body)
	}
	if decoded.Error != nil {
		t.Error(*decoded.Error)
	}
	if decoded.ElapsedMs <= 0 {
		t.Error(decoded.ElapsedMs)
	}
}

func TestPummelBenchmarkJSONOutput(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			hits++
		}))
	defer server.Close()

	cfg := parseArgs(t, "--json", "--benchmark", "5", server.URL)
	p, err := NewPummel(cfg)
	if err != nil {
		t.Fatal(err)
	}
	out := new(bytes.Buffer)
	p.RedirectOutputTo(out)

	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if hits != 5 {
		t.Error(hits)
	}

	var decoded struct {
		URL               string  `json:"url"`
		TotalRequests     int     `json:"total_requests"`
		Successful        int     `json:"successful_requests"`
		Failed            int     `json:"failed_requests"`
		SuccessRate       float64 `json:"success_rate"`
		AvgTimeMs         float64 `json:"avg_time_ms"`
		MedianTimeMs      float64 `json:"median_time_ms"`
		MinTimeMs         float64 `json:"min_time_ms"`
		MaxTimeMs         float64 `json:"max_time_ms"`
		TotalDurationS    float64 `json:"total_duration_s"`
		RequestsPerSecond float64 `json:"requests_per_second"`
	}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatal(err, out.String())
	}
	if decoded.URL != server.URL {
		t.Error(decoded.URL)
	}
	if decoded.TotalRequests != 5 || decoded.Successful != 5 || decoded.Failed != 0 {
		t.Error(decoded)
	}
	if decoded.SuccessRate != 100.0 {
		t.Error(decoded.SuccessRate)
	}
	if decoded.RequestsPerSecond <= 0 || decoded.TotalDurationS <= 0 {
		t.Error(decoded)
	}
	if decoded.MinTimeMs > decoded.MedianTimeMs ||
		decoded.MedianTimeMs > decoded.MaxTimeMs {
		t.Error(decoded)
	}
}

func TestPummelPlainTextOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	cfg := parseArgs(t, "-q", server.URL)
	cfg.printResult = true
	p, err := NewPummel(cfg)
	if err != nil {
		t.Fatal(err)
	}
	out := new(bytes.Buffer)
	p.RedirectOutputTo(out)

	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Status: 200") {
		t.Error(out.String())
	}
}

func TestPummelPlainTextBenchmarkWithLatencies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	cfg := parseArgs(t, "-q", "-l", "--benchmark", "3", server.URL)
	cfg.printResult = true
	p, err := NewPummel(cfg)
	if err != nil {
		t.Fatal(err)
	}
	out := new(bytes.Buffer)
	p.RedirectOutputTo(out)

	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	if !strings.Contains(s, "Benchmark results:") {
		t.Error(s)
	}
	if !strings.Contains(s, "Latency distribution:") {
		t.Error(s)
	}
}

func TestPummelGatherInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	cfg := parseArgs(t, "-q", "-H", "Accept: text/plain", "--benchmark", "2", server.URL)
	p, err := NewPummel(cfg)
	if err != nil {
		t.Fatal(err)
	}
	p.DisableOutput()

	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	info := p.GatherInfo()
	if info.Spec.URL != server.URL || info.Spec.Method != "GET" {
		t.Error(info.Spec)
	}
	if info.Spec.NumRequests != 2 {
		t.Error(info.Spec.NumRequests)
	}
	if len(info.Spec.Headers) != 1 || info.Spec.Headers[0].Key != "Accept" {
		t.Error(info.Spec.Headers)
	}
	if info.Benchmark == nil || info.Single != nil {
		t.Error("benchmark run should produce benchmark stats only")
	}
	if info.Benchmark.TotalRequests != 2 {
		t.Error(info.Benchmark)
	}
	if info.Benchmark.RunID == "" {
		t.Error("missing run id")
	}
}
