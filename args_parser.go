package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kingpin"
)

// Config carries the parsed CLI arguments. The validated request and
// test configuration are derived from it via Request and TestConfig.
type Config struct {
	url     string
	method  string
	headers *headersList
	data    string
	timeout time.Duration

	retryAttempts int
	retryDelay    time.Duration
	rateLimit     *float64
	numReqs       *uint64

	verifySSL      bool
	verbose        bool
	printLatencies bool

	certPath, keyPath string
	clientType        ClientTyp

	printIntro, printProgress, printResult bool

	format Format
}

type TestTyp int

const (
	single TestTyp = iota
	benchmarked
)

func (c *Config) TestType() TestTyp {
	if c.numReqs != nil {
		return benchmarked
	}
	return single
}

// Request builds the validated APIRequest, decoding the -d payload as
// JSON.
func (c *Config) Request() (*APIRequest, error) {
	var body interface{}
	if c.data != "" {
		if err := json.Unmarshal([]byte(c.data), &body); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	return NewAPIRequest(c.url, c.method, c.headers.Map(), nil, body, c.timeout)
}

// TestConfig builds the execution pipeline configuration. Validation
// happens when the client is constructed.
func (c *Config) TestConfig() *TestConfig {
	return &TestConfig{
		RetryAttempts:   c.retryAttempts,
		RetryDelay:      c.retryDelay,
		RateLimit:       c.rateLimit,
		VerifySSL:       c.verifySSL,
		FollowRedirects: true,
		ClientType:      c.clientType,
		CertPath:        c.certPath,
		KeyPath:         c.keyPath,
	}
}

type ArgsParser interface {
	Parse([]string) (Config, error)
}

type kingpinParser struct {
	app *kingpin.Application

	url string

	method         string
	headers        *headersList
	data           string
	timeout        time.Duration
	retryAttempts  int
	retryDelay     time.Duration
	rateLimit      nullableFloat64
	numReqs        nullableUint64
	noVerifySSL    bool
	verbose        bool
	jsonOut        bool
	printLatencies bool
	certPath       string
	keyPath        string
	useFastHTTP    bool
	useNetHTTP     bool
	noPrint        bool
	printSpec      string
	formatSpec     string
}

func NewKingpinParser() ArgsParser {
	kparser := &kingpinParser{headers: new(headersList)}

	app := kingpin.New("pummel", "Test and benchmark HTTP APIs from the command line.")
	app.Version(version)
	app.Flag("method", "HTTP method to use.").
		Short('X').Default("GET").
		StringVar(&kparser.method)
	app.Flag("header", "HTTP header to add, \"Key: Value\" form (can be repeated).").
		Short('H').PlaceHolder("\"K: V\"").
		SetValue(kparser.headers)
	app.Flag("data", "Request body as a JSON string.").
		Short('d').PlaceHolder("JSON").
		StringVar(&kparser.data)
	app.Flag("timeout", "Request timeout.").
		Short('t').Default("30s").
		DurationVar(&kparser.timeout)
	app.Flag("retry", "Number of attempts on executor failure.").
		Default("3").
		IntVar(&kparser.retryAttempts)
	app.Flag("retry-delay", "Initial delay between retries, doubled after each failed attempt.").
		Default("500ms").
		DurationVar(&kparser.retryDelay)
	app.Flag("rate-limit", "Rate limit in requests per second.").
		PlaceHolder("RPS").
		SetValue(&kparser.rateLimit)
	app.Flag("benchmark", "Benchmark the endpoint with N sequential requests.").
		PlaceHolder("N").
		SetValue(&kparser.numReqs)
	app.Flag("no-verify-ssl", "Disable TLS certificate verification.").
		BoolVar(&kparser.noVerifySSL)
	app.Flag("latencies", "Print latency percentiles for benchmark runs.").
		Short('l').
		BoolVar(&kparser.printLatencies)
	app.Flag("cert", "Path to the client's TLS certificate.").
		PlaceHolder("FILE").
		StringVar(&kparser.certPath)
	app.Flag("key", "Path to the client's TLS certificate private key.").
		PlaceHolder("FILE").
		StringVar(&kparser.keyPath)
	app.Flag("fasthttp", "Use the fasthttp executor.").
		BoolVar(&kparser.useFastHTTP)
	app.Flag("http1", "Use the net/http executor (default).").
		BoolVar(&kparser.useNetHTTP)
	app.Flag("verbose", "Verbose output and debug logging.").
		Short('v').
		BoolVar(&kparser.verbose)
	app.Flag("json", "Emit the result as JSON, shorthand for -o json.").
		BoolVar(&kparser.jsonOut)
	app.Flag("no-print", "Don't output anything.").
		Short('q').
		BoolVar(&kparser.noPrint)
	app.Flag("print", "Specifies what to output. Comma-separated list of values "+
		"'intro' (short: 'i'), 'progress' (short: 'p'), 'result' (short: 'r').").
		Short('p').PlaceHolder("<spec>").Default("i,p,r").
		StringVar(&kparser.printSpec)
	app.Flag("format", "Which format to use to output the result. <spec> is "+
		"'plain-text' (short: 'pt'), 'json' (short: 'j') or a path to a "+
		"user-defined text/template prefixed with 'path:'.").
		Short('o').PlaceHolder("<spec>").Default("plain-text").
		StringVar(&kparser.formatSpec)

	app.Arg("url", "Target's URL.").Required().
		StringVar(&kparser.url)

	kparser.app = app
	return kparser
}

func (k *kingpinParser) Parse(args []string) (Config, error) {
	k.app.Name = args[0]
	_, err := k.app.Parse(args[1:])
	if err != nil {
		return Config{}, err
	}

	if k.numReqs.val != nil && *k.numReqs.val == 0 {
		return Config{}, errInvalidNumberOfReqs
	}

	pi, pp, pr, err := parsePrintSpec(k.printSpec)
	if err != nil {
		return Config{}, err
	}
	if k.noPrint {
		pi, pp, pr = false, false, false
	}

	format := FormatFromString(k.formatSpec)
	if format == nil {
		return Config{}, fmt.Errorf("unknown format or invalid format spec %q", k.formatSpec)
	}
	if k.jsonOut {
		format = KnownFormat("json")
	}
	// Intro lines and the progress bar would corrupt machine-readable
	// output.
	if format == KnownFormat("json") {
		pi, pp = false, false
	}

	clientType := nhttp
	if k.useFastHTTP && !k.useNetHTTP {
		clientType = fhttp
	}

	return Config{
		url:            k.url,
		method:         k.method,
		headers:        k.headers,
		data:           k.data,
		timeout:        k.timeout,
		retryAttempts:  k.retryAttempts,
		retryDelay:     k.retryDelay,
		rateLimit:      k.rateLimit.val,
		numReqs:        k.numReqs.val,
		verifySSL:      !k.noVerifySSL,
		verbose:        k.verbose,
		printLatencies: k.printLatencies,
		certPath:       k.certPath,
		keyPath:        k.keyPath,
		clientType:     clientType,
		printIntro:     pi,
		printProgress:  pp,
		printResult:    pr,
		format:         format,
	}, nil
}

func parsePrintSpec(spec string) (bool, bool, bool, error) {
	pi, pp, pr := false, false, false
	if spec == "" {
		return false, false, false, errEmptyPrintSpec
	}
	for _, part := range strings.Split(spec, ",") {
		switch part {
		case "i", "intro":
			pi = true
		case "p", "progress":
			pp = true
		case "r", "result":
			pr = true
		default:
			return false, false, false,
				fmt.Errorf("%q is not a valid part of print spec", part)
		}
	}
	return pi, pp, pr, nil
}
