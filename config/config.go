package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults for a stock node installation.
const (
	DefaultHost           = "127.0.0.1"
	DefaultPort           = 8080
	DefaultTimeoutSecs    = 5
	DefaultRSSWarnBytes   = 1 << 30 // 1 GiB
	DefaultRSSCritBytes   = 2 << 30 // 2 GiB
	DefaultService        = "kvstore"
	DefaultServiceAccount = "kvstore"
	DefaultNodeBin        = "kvd"
	DefaultLogRoot        = "/var/lib/kvstore/engine"
	DefaultStatsField     = "node_puts_total"
	DefaultRingField      = "ring_members"
	DefaultFixerBin       = "kv-fixer"
	DefaultProfilerBin    = "kv-profile"
)

// Config is the complete, immutable run configuration.
type Config struct {
	// Host and Port locate the node's admin HTTP interface.
	Host string `toml:"host"`
	Port int    `toml:"port"`

	// TimeoutSecs bounds each HTTP probe. Timeouts count as failed
	// responses, not as a distinct error class.
	TimeoutSecs int `toml:"timeout"`

	// LogRoot is scanned for storage-engine LOG files; DataRoot is
	// the engine data root referenced by remediation transcripts.
	// DataRoot defaults to LogRoot.
	LogRoot  string `toml:"log_root"`
	DataRoot string `toml:"data_root"`

	// RSSWarnBytes and RSSCritBytes are the resident-memory
	// thresholds. Both use strictly-greater-than semantics.
	RSSWarnBytes uint64 `toml:"rss_warn"`
	RSSCritBytes uint64 `toml:"rss_crit"`

	// Service is the service-manager unit name for the node.
	Service string `toml:"service"`

	// ServiceAccount is the account the local administrative ping
	// runs under.
	ServiceAccount string `toml:"service_account"`

	// NodeBin is the node executable, both for process-table matching
	// and for local administrative commands.
	NodeBin string `toml:"node_bin"`

	// NodeVersion overrides version discovery when set. When empty
	// the version is discovered from the node binary at run time.
	NodeVersion string `toml:"node_version"`

	// StatsField is the counter expected in the /stats payload.
	StatsField string `toml:"stats_field"`

	// RingField is the cluster-membership list in the /stats payload.
	RingField string `toml:"ring_field"`

	// AuthToken, when set, is sent as a bearer token on admin HTTP
	// probes. Supports ${VAR} environment expansion.
	AuthToken string `toml:"auth_token"`

	// FixerBin and ProfilerBin name the external fixer utility and
	// sampling profiler. Both are opaque executables.
	FixerBin    string `toml:"fixer_bin"`
	ProfilerBin string `toml:"profiler_bin"`

	// Monitoring switches output to one terse line per check.
	Monitoring bool `toml:"monitoring"`

	// AllChecks enables the extended battery (stats, profile, rss).
	AllChecks bool `toml:"all_checks"`

	// Telemetry configures the optional OpenTelemetry export.
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// TelemetryConfig configures tracing/metrics export for a run.
// Disabled by default: a one-shot CLI only exports when a collector
// is actually configured.
type TelemetryConfig struct {
	Enabled        bool   `toml:"enabled"`
	TraceExporter  string `toml:"trace_exporter"`  // otlp|stdout|none
	MetricExporter string `toml:"metric_exporter"` // otlp|prometheus|stdout|none
	LogLevel       string `toml:"log_level"`       // debug|info|warn|error
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		TimeoutSecs:    DefaultTimeoutSecs,
		LogRoot:        DefaultLogRoot,
		RSSWarnBytes:   DefaultRSSWarnBytes,
		RSSCritBytes:   DefaultRSSCritBytes,
		Service:        DefaultService,
		ServiceAccount: DefaultServiceAccount,
		NodeBin:        DefaultNodeBin,
		StatsField:     DefaultStatsField,
		RingField:      DefaultRingField,
		FixerBin:       DefaultFixerBin,
		ProfilerBin:    DefaultProfilerBin,
		Telemetry: TelemetryConfig{
			LogLevel: "info",
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path. An
// empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	token, err := expandEnv(cfg.AuthToken)
	if err != nil {
		return Config{}, fmt.Errorf("config: auth_token: %w", err)
	}
	cfg.AuthToken = token

	if cfg.DataRoot == "" {
		cfg.DataRoot = cfg.LogRoot
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("config: host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.TimeoutSecs <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %d", c.TimeoutSecs)
	}
	if c.LogRoot == "" {
		return errors.New("config: log_root is required")
	}
	if c.RSSCritBytes <= c.RSSWarnBytes {
		return fmt.Errorf("config: rss critical threshold %d must exceed warning threshold %d",
			c.RSSCritBytes, c.RSSWarnBytes)
	}
	if c.NodeBin == "" {
		return errors.New("config: node_bin is required")
	}
	return nil
}

// Timeout returns the probe timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// BaseURL returns the node admin HTTP base URL.
func (c Config) BaseURL() string {
	return "http://" + net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv expands ${VAR} references in s, erroring on variables
// missing from the environment. `$$` emits a literal `$`.
func expandEnv(s string) (string, error) {
	const dollarSentinel = "\x00KVDIAG_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollarSentinel)

	missing := make(map[string]struct{})
	for _, match := range envVarPattern.FindAllStringSubmatch(s, -1) {
		key := match[1]
		if _, ok := os.LookupEnv(key); !ok {
			missing[key] = struct{}{}
		}
	}
	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", fmt.Errorf("missing environment variables: %s", strings.Join(keys, ", "))
	}

	s = os.ExpandEnv(s)
	s = strings.ReplaceAll(s, dollarSentinel, "$")
	return s, nil
}
