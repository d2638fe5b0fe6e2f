package node

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/jonwraymond/kvdiag/check"
	"github.com/jonwraymond/kvdiag/compaction"
	"github.com/jonwraymond/kvdiag/config"
)

// CheckNames lists every check the registry knows, in battery order.
var CheckNames = []string{
	"config",
	"service",
	"process",
	"system",
	"nodeping",
	"ping",
	"stats",
	"rss",
	"singleton",
	"oktostart",
	"profile",
	"compaction",
}

// Deps are the external collaborators the battery runs against. Zero
// values are replaced with the real host-backed implementations;
// tests inject fakes.
type Deps struct {
	Runner CommandRunner
	Table  ProcessTable
	System *SystemChecker
}

// NewRegistry wires the full check battery against the configuration.
// The node version is resolved once here — the configured override
// when set, otherwise discovered from the node binary — and shared by
// the config display and the compaction diagnosis. Discovery failure
// is absorbed: the compaction check reports unknown rather than
// guessing an era.
func NewRegistry(ctx context.Context, cfg config.Config, deps Deps) (*check.Registry, error) {
	if deps.Runner == nil {
		deps.Runner = ExecRunner{}
	}
	if deps.Table == nil {
		table, err := NewProcTable()
		if err != nil {
			return nil, err
		}
		deps.Table = table
	}
	if deps.System == nil {
		system, err := NewSystemChecker()
		if err != nil {
			return nil, err
		}
		deps.System = system
	}

	nodeVersion := cfg.NodeVersion
	if nodeVersion == "" {
		if discovered, err := DiscoverVersion(ctx, deps.Runner, cfg.NodeBin); err == nil {
			nodeVersion = discovered
		}
	}

	mode := check.ModeInteractive
	if cfg.Monitoring {
		mode = check.ModeMonitoring
	}

	probe := NewProbe(ProbeConfig{
		BaseURL: cfg.BaseURL(),
		Timeout: cfg.Timeout(),
		Token:   cfg.AuthToken,
	})
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	reg := check.NewRegistry()
	reg.Register(NewConfigChecker(cfg, nodeVersion))
	reg.Register(NewServiceChecker(deps.Runner, cfg.Service))
	reg.Register(NewProcessChecker(deps.Table, cfg.NodeBin))
	reg.Register(deps.System)
	reg.Register(NewLocalPingChecker(deps.Runner, cfg.NodeBin, cfg.ServiceAccount))
	reg.Register(NewRemotePingChecker(probe))
	reg.Register(NewStatsChecker(probe, cfg.StatsField))
	reg.Register(NewRSSChecker(deps.Table, cfg.NodeBin, RSSCheckerConfig{
		WarnBytes: cfg.RSSWarnBytes,
		CritBytes: cfg.RSSCritBytes,
	}))
	reg.Register(NewSingletonChecker(probe, cfg.RingField))
	reg.Register(NewOkToStartChecker(deps.Table, cfg.NodeBin, cfg.LogRoot, addr))
	reg.Register(NewProfileChecker(deps.Runner, deps.Table, cfg.NodeBin, cfg.ProfilerBin))
	reg.Register(compaction.NewDiagnostics(compaction.Config{
		LogRoot:     cfg.LogRoot,
		DataRoot:    cfg.DataRoot,
		NodeVersion: nodeVersion,
		FixerBin:    cfg.FixerBin,
		Mode:        mode,
	}))

	return reg, nil
}

// StandardPlan orders the full battery. The config display, the
// best-effort service query, and the process check always run; the
// liveness-dependent probes run only behind a passing process check,
// with the ok-to-start diagnostic replacing them when the node is
// down; the compaction scan always runs, since stale logs are
// informative even when the node is down.
func StandardPlan(allChecks bool) check.Plan {
	plan := check.Plan{
		{Check: "config"},
		{Check: "service", BestEffort: true},
		{Check: "process"},
		{Check: "system", When: check.Passed("process")},
		{Check: "nodeping", When: check.Passed("process")},
		{Check: "ping", When: check.Passed("process")},
		{Check: "singleton", When: check.Passed("process")},
	}

	if allChecks {
		plan = append(plan,
			check.Step{Check: "stats", When: check.Passed("process")},
			check.Step{Check: "profile", When: check.Passed("process"), BestEffort: true},
			check.Step{Check: "rss", When: check.Passed("process")},
		)
	}

	plan = append(plan,
		check.Step{Check: "oktostart", When: check.NotPassed("process")},
		check.Step{Check: "compaction"},
	)
	return plan
}

// ValidCheckName reports whether name is a known single-check target.
func ValidCheckName(name string) bool {
	for _, n := range CheckNames {
		if n == name {
			return true
		}
	}
	return false
}

// UnknownCheckError describes an unrecognized single-check name.
func UnknownCheckError(name string) error {
	return fmt.Errorf("unknown check %q, valid checks: %v", name, CheckNames)
}
