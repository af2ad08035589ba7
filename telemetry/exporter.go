package telemetry

import (
	"context"
	"encoding/hex"
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogSpanExporter implements the OpenTelemetry SpanExporter interface and
// writes completed spans to a structured logger.
//
// Export errors cannot occur with a logger backend, so ExportSpans always
// returns nil and never blocks the trace pipeline.
type LogSpanExporter struct {
	logger *slog.Logger
}

// NewLogSpanExporter creates a LogSpanExporter writing to the given logger.
// A nil logger falls back to slog.Default().
func NewLogSpanExporter(logger *slog.Logger) *LogSpanExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSpanExporter{logger: logger}
}

// ExportSpans writes each span to the logger at debug level.
func (e *LogSpanExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		sc := span.SpanContext()
		traceIDBytes := sc.TraceID()
		spanIDBytes := sc.SpanID()

		attrs := []any{
			"trace_id", hex.EncodeToString(traceIDBytes[:]),
			"span_id", hex.EncodeToString(spanIDBytes[:]),
			"duration", span.EndTime().Sub(span.StartTime()),
			"status", span.Status().Code.String(),
		}

		if span.Parent().IsValid() {
			parentSpanIDBytes := span.Parent().SpanID()
			attrs = append(attrs, "parent_span_id", hex.EncodeToString(parentSpanIDBytes[:]))
		}

		for _, attr := range span.Attributes() {
			attrs = append(attrs, string(attr.Key), attr.Value.AsString())
		}

		e.logger.Debug("span "+span.Name(), attrs...)
	}
	return nil
}

// Shutdown is a no-op; the logger's lifecycle is managed by the caller.
func (e *LogSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}
