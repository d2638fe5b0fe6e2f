package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// TestLogger_IncludesCheckFields verifies check run fields are present in log output.
func TestLogger_IncludesCheckFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	meta := CheckMeta{
		RunID:       "run-1234",
		Name:        "ping",
		NodeVersion: "1.3.1",
	}

	checkLogger := logger.WithCheck(meta)
	checkLogger.Info(context.Background(), "test message")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, buf.String())
	}

	if v, ok := logEntry["check.name"].(string); !ok || v != "ping" {
		t.Errorf("expected check.name='ping', got %v", logEntry["check.name"])
	}
	if v, ok := logEntry["run.id"].(string); !ok || v != "run-1234" {
		t.Errorf("expected run.id='run-1234', got %v", logEntry["run.id"])
	}
	if v, ok := logEntry["node.version"].(string); !ok || v != "1.3.1" {
		t.Errorf("expected node.version='1.3.1', got %v", logEntry["node.version"])
	}
}

// TestLogger_OmitsEmptyOptionalFields verifies unset meta fields are absent.
func TestLogger_OmitsEmptyOptionalFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	checkLogger := logger.WithCheck(CheckMeta{Name: "process"})
	checkLogger.Info(context.Background(), "test message")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if _, ok := logEntry["run.id"]; ok {
		t.Error("run.id should be absent when not set")
	}
	if _, ok := logEntry["node.version"]; ok {
		t.Error("node.version should be absent when not set")
	}
}

// TestLogger_Levels verifies each method emits its level.
func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		log   func(Logger, context.Context)
	}{
		{"debug", func(l Logger, ctx context.Context) { l.Debug(ctx, "m") }},
		{"info", func(l Logger, ctx context.Context) { l.Info(ctx, "m") }},
		{"warn", func(l Logger, ctx context.Context) { l.Warn(ctx, "m") }},
		{"error", func(l Logger, ctx context.Context) { l.Error(ctx, "m") }},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter("debug", &buf)
			tt.log(logger, context.Background())

			var logEntry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
				t.Fatalf("failed to parse log output as JSON: %v", err)
			}
			if v, ok := logEntry["level"].(string); !ok || v != tt.level {
				t.Errorf("expected level=%q, got %v", tt.level, logEntry["level"])
			}
		})
	}
}

// TestLogger_TokenRedacted verifies credential fields never reach the stream.
func TestLogger_TokenRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	checkLogger := logger.WithCheck(CheckMeta{Name: "config"})
	checkLogger.Info(context.Background(), "probe configured",
		Field{Key: "token", Value: "super-secret-credential"},
	)

	output := buf.String()
	if strings.Contains(output, "super-secret-credential") {
		t.Error("raw token should be redacted, but found in output")
	}
	if !strings.Contains(output, "[REDACTED]") {
		t.Error("expected redaction marker in output")
	}
}

// TestLogger_LevelFiltering verifies log level filtering.
func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	checkLogger := logger.WithCheck(CheckMeta{Name: "stats"})

	checkLogger.Info(context.Background(), "info message")
	if strings.Contains(buf.String(), "info message") {
		t.Error("info message should be filtered when level is warn")
	}

	checkLogger.Warn(context.Background(), "warn message")
	if !strings.Contains(buf.String(), "warn message") {
		t.Error("warn message should pass through when level is warn")
	}
}

// TestLogger_FieldsIncluded verifies extra fields survive serialization.
func TestLogger_FieldsIncluded(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "check passed",
		Field{Key: "duration_ms", Value: 50.5},
		Field{Key: "severity", Value: "ok"},
	)

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if v, ok := logEntry["duration_ms"].(float64); !ok || v != 50.5 {
		t.Errorf("expected duration_ms=50.5, got %v", logEntry["duration_ms"])
	}
	if v, ok := logEntry["severity"].(string); !ok || v != "ok" {
		t.Errorf("expected severity='ok', got %v", logEntry["severity"])
	}
}
