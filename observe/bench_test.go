package observe

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/jonwraymond/kvdiag/check"
)

// BenchmarkLogger_Info measures logging throughput.
func BenchmarkLogger_Info(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "benchmark message", Field{Key: "iteration", Value: i})
	}
}

// BenchmarkLogger_Info_MultipleFields measures logging with multiple fields.
func BenchmarkLogger_Info_MultipleFields(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()
	fields := []Field{
		{Key: "severity", Value: "ok"},
		{Key: "duration_ms", Value: 42.0},
		{Key: "summary", Value: "pong"},
		{Key: "attempt", Value: 1},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info(ctx, "benchmark message", fields...)
	}
}

// BenchmarkLogger_WithCheck measures creating check-scoped loggers.
func BenchmarkLogger_WithCheck(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	meta := CheckMeta{
		RunID:       "run-bench",
		Name:        "ping",
		NodeVersion: "1.3.1",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = logger.WithCheck(meta)
	}
}

// BenchmarkLogger_LevelFiltering measures overhead of level filtering.
func BenchmarkLogger_LevelFiltering(b *testing.B) {
	logger := NewLoggerWithWriter("error", io.Discard) // Only error level
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// These should be filtered out (no actual logging)
		logger.Debug(ctx, "filtered debug")
		logger.Info(ctx, "filtered info")
		logger.Warn(ctx, "filtered warn")
	}
}

// BenchmarkCheckMeta_SpanName measures span name generation.
func BenchmarkCheckMeta_SpanName(b *testing.B) {
	meta := CheckMeta{Name: "compaction"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = meta.SpanName()
	}
}

// BenchmarkTracer_StartEndSpan measures tracer span lifecycle (noop).
func BenchmarkTracer_StartEndSpan(b *testing.B) {
	tracer := newNoopTracer()
	ctx := context.Background()
	meta := CheckMeta{Name: "ping"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx, span := tracer.StartSpan(ctx, meta)
		tracer.EndSpan(span, "ok", false)
		_ = ctx
	}
}

// BenchmarkMetrics_RecordRun measures metrics recording.
func BenchmarkMetrics_RecordRun(b *testing.B) {
	ctx := context.Background()
	obs, err := NewObserver(ctx, Config{
		ServiceName: "bench",
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
	})
	if err != nil {
		b.Fatalf("failed to create observer: %v", err)
	}
	defer obs.Shutdown(ctx)

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		b.Fatalf("failed to create metrics: %v", err)
	}

	meta := CheckMeta{Name: "ping", NodeVersion: "1.3.1"}
	duration := 100 * time.Millisecond

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		metrics.RecordRun(ctx, meta, "ok", false, duration)
	}
}

// BenchmarkRuntime_Instrument measures the full per-result hook.
func BenchmarkRuntime_Instrument(b *testing.B) {
	ctx := context.Background()
	obs, err := NewObserver(ctx, Config{
		ServiceName: "bench",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none"},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: false},
	})
	if err != nil {
		b.Fatalf("failed to create observer: %v", err)
	}
	defer obs.Shutdown(ctx)

	rt, err := NewRuntime(obs, "127.0.0.1:8080", "1.3.1")
	if err != nil {
		b.Fatalf("failed to create runtime: %v", err)
	}

	hook := rt.Instrument()
	result := check.OK("ping", "OK")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hook(result, time.Millisecond)
	}
}

// BenchmarkConcurrent_Logger measures concurrent logging.
func BenchmarkConcurrent_Logger(b *testing.B) {
	logger := NewLoggerWithWriter("info", io.Discard)
	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			logger.Info(ctx, "concurrent message", Field{Key: "iteration", Value: i})
			i++
		}
	})
}

// BenchmarkConfig_Validate measures configuration validation.
func BenchmarkConfig_Validate(b *testing.B) {
	cfg := Config{
		ServiceName: "kvdiag",
		Version:     "1.0.0",
		Tracing:     TracingConfig{Enabled: true, Exporter: "otlp", SamplePct: 0.5},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "prometheus"},
		Logging:     LoggingConfig{Enabled: true, Level: "info"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cfg.Validate()
	}
}
