package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records outcome metrics for check runs.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordRun records one check run with its severity and duration.
	RecordRun(ctx context.Context, meta CheckMeta, severity string, failed bool, duration time.Duration)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	totalCount   metric.Int64Counter
	failedCount  metric.Int64Counter
	durationHist metric.Float64Histogram
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	totalCount, err := meter.Int64Counter(
		"check.run.total",
		metric.WithDescription("Total number of check runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	failedCount, err := meter.Int64Counter(
		"check.run.failed",
		metric.WithDescription("Number of check runs that did not pass"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"check.run.duration_ms",
		metric.WithDescription("Check run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		totalCount:   totalCount,
		failedCount:  failedCount,
		durationHist: durationHist,
	}, nil
}

// RecordRun records metrics for one check run. The run id stays out of
// the attribute set, it would explode metric cardinality.
func (m *metricsImpl) RecordRun(ctx context.Context, meta CheckMeta, severity string, failed bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("check.name", meta.Name),
		attribute.String("check.severity", severity),
	}
	if meta.NodeVersion != "" {
		attrs = append(attrs, attribute.String("node.version", meta.NodeVersion))
	}

	opt := metric.WithAttributes(attrs...)

	m.totalCount.Add(ctx, 1, opt)
	if failed {
		m.failedCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordRun(ctx context.Context, meta CheckMeta, severity string, failed bool, duration time.Duration) {
}
