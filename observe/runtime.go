package observe

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/kvdiag/check"
)

// Runtime binds telemetry to a battery run. Every result it observes
// carries the same run id, so logs, spans, and metrics from one
// invocation correlate.
//
// Contract:
//   - Concurrency: Instrument() returns a hook safe for concurrent use.
//   - Errors: observation is best-effort and never alters results.
type Runtime struct {
	meta    CheckMeta
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewRuntime creates a Runtime from an Observer. node is the probed
// node's host:port and nodeVersion its discovered version; both may be
// empty.
func NewRuntime(obs Observer, node, nodeVersion string) (*Runtime, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return &Runtime{
		meta: CheckMeta{
			RunID:       uuid.NewString(),
			Node:        node,
			NodeVersion: nodeVersion,
		},
		tracer:  newTracer(obs.Tracer()),
		metrics: metrics,
		logger:  obs.Logger(),
	}, nil
}

// RunID returns the correlation id shared by everything this runtime
// observes.
func (r *Runtime) RunID() string {
	return r.meta.RunID
}

// Instrument returns an orchestrator hook that traces, meters, and
// logs every executed result. The hook runs after the check has
// finished, so the span is recorded retroactively over the observed
// execution window.
func (r *Runtime) Instrument() check.Instrument {
	return func(result check.Result, elapsed time.Duration) {
		ctx := context.Background()

		meta := r.meta
		meta.Name = result.Name
		severity := result.Status.String()
		failed := result.Status != check.StatusOK

		_, span := r.tracer.StartSpan(ctx, meta,
			trace.WithTimestamp(time.Now().Add(-elapsed)))
		r.tracer.EndSpan(span, severity, failed)

		r.metrics.RecordRun(ctx, meta, severity, failed, elapsed)

		logger := r.logger.WithCheck(meta)
		fields := []Field{
			{Key: "severity", Value: severity},
			{Key: "duration_ms", Value: float64(elapsed.Milliseconds())},
			{Key: "summary", Value: result.Summary()},
		}

		switch result.Status {
		case check.StatusOK:
			logger.Info(ctx, "check passed", fields...)
		case check.StatusCritical:
			logger.Error(ctx, "check critical", fields...)
		default:
			logger.Warn(ctx, "check did not pass", fields...)
		}
	}
}
