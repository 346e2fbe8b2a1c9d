package main

import (
	"strings"
)

// Format selects the output rendering: one of the built-in templates or
// a user-supplied template file.
type Format interface {
	isFormat()
}

// KnownFormat is the name of a built-in output template.
type KnownFormat string

func (kf KnownFormat) isFormat() {}

func (kf KnownFormat) Template() []byte {
	return knownTemplates[kf]
}

// UserDefinedTemplate is a path to a text/template file.
type UserDefinedTemplate string

func (udt UserDefinedTemplate) isFormat() {}

// FormatFromString resolves a -o/--format spec. Unknown specs yield
// nil.
func FormatFromString(formatSpec string) Format {
	switch formatSpec {
	case "plain-text", "pt":
		return KnownFormat("plain-text")
	case "json", "j":
		return KnownFormat("json")
	}
	if strings.HasPrefix(formatSpec, "path:") {
		return UserDefinedTemplate(strings.TrimPrefix(formatSpec, "path:"))
	}
	return nil
}

var knownTemplates = map[KnownFormat][]byte{
	"plain-text": []byte(plainTextTemplate),
	"json":       []byte(jsonTemplate),
}

const plainTextTemplate = `{{- if .Benchmark -}}
Benchmark results: {{ .Spec.URL }}
  Requests:     {{ .Benchmark.TotalRequests }} total, {{ .Benchmark.SuccessfulRequests }} ok ({{ printf "%.1f" .Benchmark.SuccessRate }}%), {{ .Benchmark.FailedRequests }} failed
  Timing:
    Average:    {{ FormatTimeMs .Benchmark.AvgTimeMs }}
    Median:     {{ FormatTimeMs .Benchmark.MedianTimeMs }}
    Min:        {{ FormatTimeMs .Benchmark.MinTimeMs }}
    Max:        {{ FormatTimeMs .Benchmark.MaxTimeMs }}
  Throughput:
    Duration:   {{ printf "%.2fs" .Benchmark.TotalDurationSec }}
    Reqs/sec:   {{ printf "%.2f" .Benchmark.RequestsPerSecond }}
{{ if WithLatencies }}  Latency distribution:
{{- range .Benchmark.Percentiles }}
    {{ printf "%3.0f%%" (Multiply .Quantile 100) }} {{ FormatTimeUs .ValueUs }}
{{- end }}
{{ end -}}
{{ if .Benchmark.Errors }}  Errors:
{{- range .Benchmark.Errors }}
    {{ .Error }} ({{ .Count }})
{{- end }}
{{ end -}}
{{- else -}}
Status: {{ .Single.StatusCode }}
Time:   {{ FormatTimeMs .Single.ElapsedMs }}
{{ if .Single.Error }}Error:  {{ .Single.Error }}
{{ end -}}
{{ if WithVerbose }}Headers:
{{- range $k, $v := .Single.Headers }}
  {{ $k }}: {{ $v }}
{{- end }}
Body:
{{ Truncate .Single.Body 500 }}
{{ end -}}
{{- end -}}
`

const jsonTemplate = `{{- if .Benchmark -}}
{"url":{{ ToJSON .Spec.URL }},"total_requests":{{ .Benchmark.TotalRequests }},"successful_requests":{{ .Benchmark.SuccessfulRequests }},"failed_requests":{{ .Benchmark.FailedRequests }},"success_rate":{{ .Benchmark.SuccessRate }},"avg_time_ms":{{ .Benchmark.AvgTimeMs }},"median_time_ms":{{ .Benchmark.MedianTimeMs }},"min_time_ms":{{ .Benchmark.MinTimeMs }},"max_time_ms":{{ .Benchmark.MaxTimeMs }},"total_duration_s":{{ .Benchmark.TotalDurationSec }},"requests_per_second":{{ .Benchmark.RequestsPerSecond }}}
{{- else -}}
{"status_code":{{ .Single.StatusCode }},"success":{{ .Single.Success }},"elapsed_ms":{{ .Single.ElapsedMs }},"headers":{{ ToJSON .Single.Headers }},"body":{{ ToJSON .Single.Body }},"error":{{ if .Single.Error }}{{ ToJSON .Single.Error }}{{ else }}null{{ end }}}
{{- end -}}
`
