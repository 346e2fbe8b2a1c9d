/*
Command line utility pummel tests and benchmarks HTTP APIs.

Installation:
  go install github.com/pummelhq/pummel@latest

Usage:
  pummel [<flags>] <url>

Flags:
      --help                Show context-sensitive help (also try --help-long
                            and --help-man).
      --version             Show application version.
  -X, --method=GET          HTTP method to use
  -H, --header="K: V" ...   HTTP header to add, "Key: Value" form (can be
                            repeated)
  -d, --data=JSON           Request body as a JSON string
  -t, --timeout=30s         Request timeout
      --retry=3             Number of attempts on executor failure
      --retry-delay=500ms   Initial delay between retries, doubled after each
                            failed attempt
      --rate-limit=RPS      Rate limit in requests per second
      --benchmark=N         Benchmark the endpoint with N sequential requests
      --no-verify-ssl       Disable TLS certificate verification
  -l, --latencies           Print latency percentiles for benchmark runs
      --cert=FILE           Path to the client's TLS certificate
      --key=FILE            Path to the client's TLS certificate private key
      --fasthttp            Use the fasthttp executor
      --http1               Use the net/http executor (default)
  -v, --verbose             Verbose output and debug logging
      --json                Emit the result as JSON, shorthand for -o json
  -q, --no-print            Don't output anything
  -p, --print=<spec>        Specifies what to output. Comma-separated list of
                            values 'intro' (short: 'i'), 'progress' (short:
                            'p'), 'result' (short: 'r'). Examples:

                              * i,p,r (prints everything)
                              * intro,result (intro & result)
                              * r (result only)
                              * result (same as above)
  -o, --format=<spec>       Which format to use to output the result. <spec>
                            is either a name (or its shorthand) of some format
                            understood by pummel or a path to the user-defined
                            template, which uses Go's text/template syntax,
                            prefixed with 'path:' string (without single
                            quotes), i.e. "path:/some/path/to/your.template".
                            Formats understood by pummel are:

                              * plain-text (short: pt)
                              * json (short: j)

Args:
  <url>  Target's URL

Exit codes: 0 on success, 1 on a validation or unexpected error, 130
when interrupted by the user.
*/
package main
