package observe

import "errors"

// Configuration errors.
var (
	// ErrMissingServiceName indicates Config.ServiceName is empty.
	ErrMissingServiceName = errors.New("observe: service name is required")

	// ErrInvalidSamplePct indicates Tracing.SamplePct is not in [0.0, 1.0].
	ErrInvalidSamplePct = errors.New("observe: sample percentage must be between 0.0 and 1.0")

	// ErrInvalidTraceExporter indicates an unknown trace exporter name.
	ErrInvalidTraceExporter = errors.New("observe: unknown tracing exporter")

	// ErrInvalidMetricExporter indicates an unknown metric exporter name.
	ErrInvalidMetricExporter = errors.New("observe: unknown metrics exporter")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("observe: unknown log level")
)

// Runtime errors.
var (
	// ErrNilObserver indicates a nil Observer was provided.
	ErrNilObserver = errors.New("observe: observer is nil")

	// ErrMissingCheckName indicates CheckMeta.Name is empty.
	ErrMissingCheckName = errors.New("observe: check name is required")
)

// ValidTraceExporters lists valid trace exporter names.
var ValidTraceExporters = []string{"otlp", "stdout", "none", ""}

// ValidMetricExporters lists valid metric exporter names.
var ValidMetricExporters = []string{"otlp", "prometheus", "stdout", "none", ""}

// ValidLogLevels lists valid log level names.
var ValidLogLevels = []string{"debug", "info", "warn", "error", ""}

// RedactedFields lists field keys that are automatically redacted in
// logs. These may carry credentials for the node's admin interface.
var RedactedFields = []string{
	"token",
	"auth_token",
	"authorization",
	"password",
	"secret",
	"api_key",
	"credential",
}
