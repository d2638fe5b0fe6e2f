package observe_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/kvdiag/observe"
)

func ExampleNewObserver() {
	cfg := observe.Config{
		ServiceName: "kvdiag",
		Version:     "1.0.0",
		Tracing:     observe.TracingConfig{Enabled: true, Exporter: "none"},
		Metrics:     observe.MetricsConfig{Enabled: false},
		Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
	}

	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, cfg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer func() {
		_ = obs.Shutdown(ctx)
	}()

	fmt.Println("Observer created successfully")
	// Output:
	// Observer created successfully
}

func ExampleNewObserver_validation() {
	// Missing service name triggers validation error
	cfg := observe.Config{
		ServiceName: "", // Empty - will fail validation
	}

	ctx := context.Background()
	_, err := observe.NewObserver(ctx, cfg)
	if errors.Is(err, observe.ErrMissingServiceName) {
		fmt.Println("Caught: missing service name")
	}
	// Output:
	// Caught: missing service name
}

func ExampleConfig_Validate() {
	cfg := observe.Config{
		ServiceName: "kvdiag",
		Version:     "1.0.0",
		Tracing: observe.TracingConfig{
			Enabled:   true,
			Exporter:  "stdout",
			SamplePct: 0.5, // 50% sampling
		},
		Metrics: observe.MetricsConfig{
			Enabled:  true,
			Exporter: "prometheus",
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid:", err)
	} else {
		fmt.Println("Configuration is valid")
	}
	// Output:
	// Configuration is valid
}

func ExampleCheckMeta_SpanName() {
	meta := observe.CheckMeta{Name: "compaction"}
	fmt.Println(meta.SpanName())

	meta2 := observe.CheckMeta{Name: "ping"}
	fmt.Println(meta2.SpanName())
	// Output:
	// check.run.compaction
	// check.run.ping
}

func ExampleCheckMeta_Validate() {
	meta := observe.CheckMeta{
		Name:        "stats",
		NodeVersion: "1.3.1",
	}
	if err := meta.Validate(); err != nil {
		fmt.Println("Invalid:", err)
	} else {
		fmt.Println("Valid check metadata")
	}

	// Invalid - missing name
	meta2 := observe.CheckMeta{RunID: "run-1"}
	if errors.Is(meta2.Validate(), observe.ErrMissingCheckName) {
		fmt.Println("Caught: missing check name")
	}
	// Output:
	// Valid check metadata
	// Caught: missing check name
}

func ExampleNewLoggerWithWriter() {
	var buf bytes.Buffer
	logger := observe.NewLoggerWithWriter("info", &buf)

	ctx := context.Background()
	logger.Info(ctx, "battery started", observe.Field{Key: "checks", Value: 12})

	fmt.Println("Logged message contains 'battery started':", bytes.Contains(buf.Bytes(), []byte("battery started")))
	// Output:
	// Logged message contains 'battery started': true
}

func ExampleLogger_withCheck() {
	var buf bytes.Buffer
	logger := observe.NewLoggerWithWriter("info", &buf)

	meta := observe.CheckMeta{
		RunID:       "run-42",
		Name:        "singleton",
		NodeVersion: "1.3.1",
	}

	checkLogger := logger.WithCheck(meta)

	ctx := context.Background()
	checkLogger.Info(ctx, "check started")

	output := buf.String()
	fmt.Println("Contains check.name:", bytes.Contains([]byte(output), []byte("check.name")))
	fmt.Println("Contains run.id:", bytes.Contains([]byte(output), []byte("run.id")))
	// Output:
	// Contains check.name: true
	// Contains run.id: true
}

func ExampleParseLogLevel() {
	levels := []string{"debug", "info", "warn", "error", "unknown"}
	for _, s := range levels {
		level := observe.ParseLogLevel(s)
		fmt.Printf("%s -> %s\n", s, level)
	}
	// Output:
	// debug -> debug
	// info -> info
	// warn -> warn
	// error -> error
	// unknown -> info
}
