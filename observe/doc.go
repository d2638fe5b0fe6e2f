// Package observe provides telemetry for check runs: structured JSON
// logging, OpenTelemetry traces and metrics, and a runtime bridge that
// hooks them into the check orchestrator.
//
// It is a pure instrumentation library: no checking, no transport, no
// I/O beyond exporter setup.
package observe
