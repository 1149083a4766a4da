package exporters

import (
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
)

// NewConsoleExporter returns a span exporter that writes pretty-printed spans
// to stdout. Used when no collector endpoint is configured.
func NewConsoleExporter() (trace.SpanExporter, error) {
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}
