package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonwraymond/kvdiag/check"
	"github.com/jonwraymond/kvdiag/config"
	"github.com/jonwraymond/kvdiag/node"
	"github.com/jonwraymond/kvdiag/observe"
)

const version = "1.0.0"

// run executes the CLI and returns the process exit code. Setup
// failures, a bad flag, an unreadable config file, an unknown check
// name, exit as unknown rather than masquerading as a healthy node.
func run(args []string) int {
	status := check.StatusUnknown

	root := newRootCmd(&status)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kvdiag:", err)
		return check.StatusUnknown.ExitCode()
	}
	return status.ExitCode()
}

func newRootCmd(status *check.Status) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kvdiag",
		Short: "Health diagnostics for a clustered key-value store node",
		Long: `kvdiag probes a local key-value store node: process presence, local
and remote ping, cluster membership, stats, resident memory, and
storage-engine compaction errors. Results aggregate into a single
monitoring-plugin exit code.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}

			orch, plan, shutdown, err := buildBattery(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer shutdown()

			s, err := orch.Run(cmd.Context(), plan)
			if err != nil {
				return err
			}
			*status = s
			return nil
		},
	}

	addConfigFlags(cmd.PersistentFlags())
	cmd.AddCommand(newCheckCmd(status))
	return cmd
}

// newCheckCmd runs exactly one named check instead of the battery.
func newCheckCmd(status *check.Status) *cobra.Command {
	return &cobra.Command{
		Use:       "check <name>",
		Short:     "Run a single check by name",
		Args:      cobra.ExactArgs(1),
		ValidArgs: node.CheckNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !node.ValidCheckName(name) {
				return node.UnknownCheckError(name)
			}

			cfg, err := resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}

			orch, _, shutdown, err := buildBattery(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer shutdown()

			s, err := orch.RunOne(cmd.Context(), name)
			if err != nil {
				return err
			}
			*status = s
			return nil
		},
	}
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to a TOML configuration file")
	flags.String("host", config.DefaultHost, "node admin interface host")
	flags.Int("port", config.DefaultPort, "node admin interface port")
	flags.Int("timeout", config.DefaultTimeoutSecs, "HTTP probe timeout in seconds")
	flags.String("log-root", config.DefaultLogRoot, "storage engine log root to scan")
	flags.String("data-root", "", "storage engine data root (defaults to the log root)")
	flags.Uint64("rss-warn", config.DefaultRSSWarnBytes, "resident memory warning threshold in bytes")
	flags.Uint64("rss-crit", config.DefaultRSSCritBytes, "resident memory critical threshold in bytes")
	flags.String("service", config.DefaultService, "service manager unit name")
	flags.String("service-account", config.DefaultServiceAccount, "account the local admin ping runs under")
	flags.String("node-bin", config.DefaultNodeBin, "node executable name")
	flags.String("node-version", "", "override node version discovery")
	flags.String("stats-field", config.DefaultStatsField, "stats counter expected in the /stats payload")
	flags.String("ring-field", config.DefaultRingField, "cluster membership list in the /stats payload")
	flags.String("fixer-bin", config.DefaultFixerBin, "storage engine fixer utility")
	flags.String("profiler-bin", config.DefaultProfilerBin, "sampling profiler utility")
	flags.Bool("monitoring", false, "terse one-line-per-check output for monitoring systems")
	flags.Bool("all", false, "run the extended battery (stats, profile, rss)")
	flags.Bool("telemetry", false, "enable OpenTelemetry export")
	flags.String("trace-exporter", "", "trace exporter: otlp|stdout|none")
	flags.String("metric-exporter", "", "metric exporter: otlp|prometheus|stdout|none")
	flags.String("log-level", "info", "telemetry log level: debug|info|warn|error")
}

// resolveConfig loads the optional config file and overlays every flag
// the user set explicitly. Flag defaults never clobber file values.
func resolveConfig(flags *pflag.FlagSet) (config.Config, error) {
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := applyFlags(&cfg, flags); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, flags *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func()) {
		if err == nil && flags.Changed(name) {
			apply()
		}
	}

	set("host", func() { cfg.Host, err = flags.GetString("host") })
	set("port", func() { cfg.Port, err = flags.GetInt("port") })
	set("timeout", func() { cfg.TimeoutSecs, err = flags.GetInt("timeout") })
	set("log-root", func() { cfg.LogRoot, err = flags.GetString("log-root") })
	set("data-root", func() { cfg.DataRoot, err = flags.GetString("data-root") })
	set("rss-warn", func() { cfg.RSSWarnBytes, err = flags.GetUint64("rss-warn") })
	set("rss-crit", func() { cfg.RSSCritBytes, err = flags.GetUint64("rss-crit") })
	set("service", func() { cfg.Service, err = flags.GetString("service") })
	set("service-account", func() { cfg.ServiceAccount, err = flags.GetString("service-account") })
	set("node-bin", func() { cfg.NodeBin, err = flags.GetString("node-bin") })
	set("node-version", func() { cfg.NodeVersion, err = flags.GetString("node-version") })
	set("stats-field", func() { cfg.StatsField, err = flags.GetString("stats-field") })
	set("ring-field", func() { cfg.RingField, err = flags.GetString("ring-field") })
	set("fixer-bin", func() { cfg.FixerBin, err = flags.GetString("fixer-bin") })
	set("profiler-bin", func() { cfg.ProfilerBin, err = flags.GetString("profiler-bin") })
	set("monitoring", func() { cfg.Monitoring, err = flags.GetBool("monitoring") })
	set("all", func() { cfg.AllChecks, err = flags.GetBool("all") })
	set("telemetry", func() { cfg.Telemetry.Enabled, err = flags.GetBool("telemetry") })
	set("trace-exporter", func() { cfg.Telemetry.TraceExporter, err = flags.GetString("trace-exporter") })
	set("metric-exporter", func() { cfg.Telemetry.MetricExporter, err = flags.GetString("metric-exporter") })
	set("log-level", func() { cfg.Telemetry.LogLevel, err = flags.GetString("log-level") })

	// DataRoot tracks the log root unless set explicitly.
	if err == nil && cfg.DataRoot == "" {
		cfg.DataRoot = cfg.LogRoot
	}
	return err
}

// buildBattery wires the registry, the plan, and the orchestrator for
// a run. The returned shutdown flushes telemetry exporters.
func buildBattery(ctx context.Context, cfg config.Config) (*check.Orchestrator, check.Plan, func(), error) {
	reg, err := node.NewRegistry(ctx, cfg, node.Deps{})
	if err != nil {
		return nil, nil, nil, err
	}

	instrument, shutdown, err := newInstrument(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	mode := check.ModeInteractive
	if cfg.Monitoring {
		mode = check.ModeMonitoring
	}

	orch := check.NewOrchestrator(reg, check.OrchestratorConfig{
		Mode:       mode,
		Out:        os.Stdout,
		Instrument: instrument,
	})
	return orch, node.StandardPlan(cfg.AllChecks), shutdown, nil
}

// newInstrument builds the telemetry hook when enabled. The hook is
// nil when telemetry is off; the orchestrator treats nil as no-op.
func newInstrument(ctx context.Context, cfg config.Config) (check.Instrument, func(), error) {
	if !cfg.Telemetry.Enabled {
		return nil, func() {}, nil
	}

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "kvdiag",
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   cfg.Telemetry.TraceExporter != "",
			Exporter:  cfg.Telemetry.TraceExporter,
			SamplePct: 1.0,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  cfg.Telemetry.MetricExporter != "",
			Exporter: cfg.Telemetry.MetricExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   cfg.Telemetry.LogLevel,
		},
	})
	if err != nil {
		return nil, nil, err
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	rt, err := observe.NewRuntime(obs, addr, cfg.NodeVersion)
	if err != nil {
		return nil, nil, err
	}

	shutdown := func() {
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		obs.Shutdown(shCtx)
	}
	return rt.Instrument(), shutdown, nil
}
