package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/cheggaaa/pb"
	uuid "github.com/satori/go.uuid"

	"github.com/pummelhq/pummel/internal"
)

// Pummel wires the parsed configuration to a client, a progress bar and
// an output template, and runs either a single request or a benchmark.
type Pummel struct {
	conf   Config
	req    *APIRequest
	client *APIClient

	bar      *pb.ProgressBar
	out      io.Writer
	template *template.Template

	single    *APIResponse
	benchmark *BenchmarkResult
}

func NewPummel(c Config) (*Pummel, error) {
	req, err := c.Request()
	if err != nil {
		return nil, err
	}
	client, err := NewAPIClient(c.TestConfig())
	if err != nil {
		return nil, err
	}

	p := &Pummel{
		conf:   c,
		req:    req,
		client: client,
		out:    os.Stdout,
	}

	total := int64(1)
	if c.TestType() == benchmarked {
		total = int64(*c.numReqs)
	}
	p.bar = pb.New64(total)
	p.bar.ShowSpeed = true
	p.bar.ManualUpdate = true
	if !c.printProgress || c.TestType() != benchmarked {
		p.bar.Output = io.Discard
		p.bar.NotPrint = true
	}
	client.Progress = func(done, total int) {
		p.bar.Set64(int64(done))
		p.bar.Update()
	}

	p.template, err = p.prepareTemplate()
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pummel) prepareTemplate() (*template.Template, error) {
	var (
		templateBytes []byte
		err           error
	)
	switch f := p.conf.format.(type) {
	case KnownFormat:
		templateBytes = f.Template()
	case UserDefinedTemplate:
		templateBytes, err = os.ReadFile(string(f))
		if err != nil {
			return nil, err
		}
	default:
		panic("format can't be nil at this point, this is a bug")
	}
	outputTemplate, err := template.New("output-template").
		Funcs(template.FuncMap{
			"WithLatencies": func() bool {
				return p.conf.printLatencies
			},
			"WithVerbose": func() bool {
				return p.conf.verbose
			},
			"FormatTimeUs": FormatTimeUs,
			"FormatTimeMs": FormatTimeMs,
			"FloatsToArray": func(ps ...float64) []float64 {
				return ps
			},
			"Multiply": func(num, coeff float64) float64 {
				return num * coeff
			},
			"Truncate": func(s string, n int) string {
				if len(s) <= n {
					return s
				}
				return s[:n] + fmt.Sprintf("... (%d more characters)", len(s)-n)
			},
			"ToJSON": func(v interface{}) (string, error) {
				data, err := json.Marshal(v)
				return string(data), err
			},
			"UUIDV1": uuid.NewV1,
			"UUIDV2": uuid.NewV2,
			"UUIDV3": uuid.NewV3,
			"UUIDV4": uuid.NewV4,
			"UUIDV5": uuid.NewV5,
		}).Parse(string(templateBytes))

	if err != nil {
		return nil, err
	}
	return outputTemplate, nil
}

func (p *Pummel) Run(ctx context.Context) error {
	if p.conf.printIntro {
		p.PrintIntro()
	}

	switch p.conf.TestType() {
	case benchmarked:
		p.bar.Start()
		result, err := p.client.Benchmark(ctx, p.req, int(*p.conf.numReqs))
		p.bar.Set64(p.bar.Total)
		p.bar.Update()
		p.bar.Finish()
		if err != nil {
			return err
		}
		p.benchmark = &result
	default:
		response, err := p.client.MakeRequest(ctx, p.req)
		if err != nil {
			return err
		}
		p.single = &response
	}

	if p.conf.printResult {
		p.PrintStats()
	}
	return nil
}

func (p *Pummel) PrintIntro() {
	if p.conf.TestType() == benchmarked {
		fmt.Fprintf(p.out, "Pummeling %v with %v request(s)\n",
			p.req.URL, *p.conf.numReqs)
	} else {
		fmt.Fprintf(p.out, "Testing %v\n", p.req.URL)
	}
}

func (p *Pummel) GatherInfo() internal.TestInfo {
	info := internal.TestInfo{
		Spec: internal.Spec{
			URL:           p.req.URL,
			Method:        p.req.Method,
			Timeout:       p.req.Timeout,
			RetryAttempts: p.conf.retryAttempts,
			RetryDelay:    p.conf.retryDelay,
			RateLimit:     p.conf.rateLimit,
			ClientType:    p.conf.clientType.String(),
			VerifySSL:     p.conf.verifySSL,
		},
	}
	if p.conf.TestType() == benchmarked {
		info.Spec.NumRequests = *p.conf.numReqs
	}
	for _, h := range p.conf.headers.Sorted() {
		info.Spec.Headers = append(info.Spec.Headers,
			internal.Header{Key: h.key, Value: h.value})
	}

	if p.single != nil {
		info.Single = &internal.SingleResult{
			StatusCode: p.single.StatusCode,
			Success:    p.single.Success(),
			ElapsedMs:  p.single.ElapsedMs(),
			Headers:    p.single.Headers,
			Body:       p.single.Body,
			Error:      p.single.Error,
		}
	}

	if p.benchmark != nil {
		b := p.benchmark
		stats := &internal.BenchmarkStats{
			RunID:              b.ID,
			TotalRequests:      b.TotalRequests,
			SuccessfulRequests: b.SuccessfulRequests,
			FailedRequests:     b.FailedRequests,
			SuccessRate:        b.SuccessRate(),
			AvgTimeMs:          b.AvgTime.Seconds() * 1000,
			MedianTimeMs:       b.MedianTime.Seconds() * 1000,
			MinTimeMs:          b.MinTime.Seconds() * 1000,
			MaxTimeMs:          b.MaxTime.Seconds() * 1000,
			TotalDurationSec:   b.TotalDuration.Seconds(),
			RequestsPerSecond:  b.RequestsPerSecond(),
		}

		times := make([]time.Duration, 0, len(b.Responses))
		for _, r := range b.Responses {
			times = append(times, r.ElapsedTime)
		}
		quantiles := []float64{0.5, 0.75, 0.9, 0.99}
		for i, v := range latencyPercentiles(times, quantiles) {
			stats.Percentiles = append(stats.Percentiles, internal.Percentile{
				Quantile: quantiles[i],
				ValueUs:  float64(v.Microseconds()),
			})
		}
		for _, ewc := range b.Errors.ByFrequency() {
			stats.Errors = append(stats.Errors, internal.ErrorWithCount{
				Error: ewc.error,
				Count: ewc.count,
			})
		}
		info.Benchmark = stats
	}

	return info
}

func (p *Pummel) PrintStats() {
	info := p.GatherInfo()
	err := p.template.Execute(p.out, info)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Fprintln(p.out)
}

func (p *Pummel) RedirectOutputTo(out io.Writer) {
	p.bar.Output = out
	p.out = out
}

func (p *Pummel) DisableOutput() {
	p.RedirectOutputTo(io.Discard)
	p.bar.NotPrint = true
}
