package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// CheckMeta identifies one check run for telemetry purposes.
type CheckMeta struct {
	RunID       string // Battery run correlation id (optional)
	Name        string // Check name (required)
	Node        string // host:port of the probed node (optional)
	NodeVersion string // Version of the node binary (optional)
}

// SpanName returns the deterministic span name for this check.
// Format: check.run.<name>
func (m CheckMeta) SpanName() string {
	return "check.run." + m.Name
}

// Validate reports whether the metadata is usable.
func (m CheckMeta) Validate() error {
	if m.Name == "" {
		return ErrMissingCheckName
	}
	return nil
}

// attrs returns the common telemetry attributes for this check.
func (m CheckMeta) attrs() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("check.name", m.Name),
	}
	if m.RunID != "" {
		attrs = append(attrs, attribute.String("run.id", m.RunID))
	}
	if m.Node != "" {
		attrs = append(attrs, attribute.String("node.addr", m.Node))
	}
	if m.NodeVersion != "" {
		attrs = append(attrs, attribute.String("node.version", m.NodeVersion))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with check-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a check run.
	StartSpan(ctx context.Context, meta CheckMeta, opts ...trace.SpanStartOption) (context.Context, trace.Span)

	// EndSpan ends the span, recording the run's severity.
	EndSpan(span trace.Span, severity string, failed bool)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// newTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with check metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta CheckMeta, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	attrs := append(meta.attrs(), attribute.Bool("check.failed", false))

	opts = append(opts,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	return t.tracer.Start(ctx, meta.SpanName(), opts...)
}

// EndSpan ends the span and records the severity the check produced. A
// failed run, anything other than an ok result, marks the span as an
// error so trace backends surface it.
func (t *tracerImpl) EndSpan(span trace.Span, severity string, failed bool) {
	span.SetAttributes(attribute.String("check.severity", severity))
	if failed {
		span.SetStatus(codes.Error, severity)
		span.SetAttributes(attribute.Bool("check.failed", true))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// newNoopTracer creates a no-op tracer.
func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta CheckMeta, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, severity string, failed bool) {
	span.End()
}
