// Package telemetry provides tracing of operations via OpenTelemetry.
package telemetry

import (
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NewNopTracer returns a tracer that does nothing, it is the default in the CLI.
func NewNopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("")
}

// EndSpan records the operation error, if any, and ends the span.
// Intended usage:
//
//	ctx, span := d.Tracer().Start(ctx, "dbt.migrate.operation.xxx")
//	defer telemetry.EndSpan(span, &err)
func EndSpan(span trace.Span, errPtr *error) {
	if errPtr != nil && *errPtr != nil {
		err := *errPtr
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
