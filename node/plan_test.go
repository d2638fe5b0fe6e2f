package node

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/kvdiag/check"
	"github.com/jonwraymond/kvdiag/config"
)

// writeSystemProc fabricates a proc mount with just enough for the
// system summary checker.
func writeSystemProc(t *testing.T) *SystemChecker {
	t.Helper()

	mount := t.TempDir()
	loadavg := "0.50 0.40 0.30 1/234 5678\n"
	meminfo := "MemTotal:       16384000 kB\nMemAvailable:    8192000 kB\n"

	if err := os.WriteFile(filepath.Join(mount, "loadavg"), []byte(loadavg), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mount, "meminfo"), []byte(meminfo), 0o644); err != nil {
		t.Fatal(err)
	}

	system, err := NewSystemCheckerAt(mount)
	if err != nil {
		t.Fatal(err)
	}
	return system
}

// batteryConfig points a default configuration at a temp engine root
// and the given admin address.
func batteryConfig(t *testing.T, addr string) config.Config {
	t.Helper()

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Host = host
	cfg.Port = port
	cfg.LogRoot = t.TempDir()
	cfg.DataRoot = cfg.LogRoot
	return cfg
}

// runBattery builds the registry, runs the standard plan, and returns
// the aggregate status, the executed check names in order, and the
// rendered output.
func runBattery(t *testing.T, cfg config.Config, deps Deps, allChecks bool) (check.Status, []string, string) {
	t.Helper()

	ctx := context.Background()
	reg, err := NewRegistry(ctx, cfg, deps)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	var executed []string
	var out bytes.Buffer
	mode := check.ModeInteractive
	if cfg.Monitoring {
		mode = check.ModeMonitoring
	}

	orch := check.NewOrchestrator(reg, check.OrchestratorConfig{
		Mode: mode,
		Out:  &out,
		Instrument: func(r check.Result, _ time.Duration) {
			executed = append(executed, r.Name)
		},
	})

	status, err := orch.Run(ctx, StandardPlan(allChecks))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return status, executed, out.String()
}

func TestBattery_NodeDown(t *testing.T) {
	cfg := batteryConfig(t, freeAddr(t))
	cfg.Monitoring = true

	status, executed, out := runBattery(t, cfg, Deps{
		Runner: &fakeRunner{},
		Table:  fakeTable{err: ErrProcessNotFound},
		System: writeSystemProc(t),
	}, false)

	if status != check.StatusCritical {
		t.Fatalf("aggregate = %v, want StatusCritical", status)
	}
	if status.ExitCode() != 2 {
		t.Errorf("ExitCode = %d, want 2", status.ExitCode())
	}

	// The liveness probes must not run against a dead node; the
	// ok-to-start diagnostic replaces them.
	want := []string{"config", "service", "process", "oktostart", "compaction"}
	if strings.Join(executed, ",") != strings.Join(want, ",") {
		t.Errorf("executed = %v, want %v", executed, want)
	}

	if !strings.Contains(out, "critical:") {
		t.Errorf("monitoring output missing a critical line:\n%s", out)
	}
}

func TestBattery_NodeHealthy(t *testing.T) {
	srv := statsServer(t, "OK", `{"node_puts_total": 12345, "ring_members": ["kv1@a", "kv1@b"]}`)
	cfg := batteryConfig(t, strings.TrimPrefix(srv.URL, "http://"))

	runner := &fakeRunner{out: map[string]string{
		"kvd version":                 "1.3.1",
		"systemctl is-active kvstore": "active",
		"sudo -u kvstore kvd ping":    "pong",
	}}

	status, executed, _ := runBattery(t, cfg, Deps{
		Runner: runner,
		Table:  fakeTable{proc: Process{PID: 4242, ResidentBytes: 100 << 20}},
		System: writeSystemProc(t),
	}, false)

	if status != check.StatusOK {
		t.Fatalf("aggregate = %v, want StatusOK", status)
	}
	if status.ExitCode() != 0 {
		t.Errorf("ExitCode = %d, want 0", status.ExitCode())
	}

	want := []string{"config", "service", "process", "system", "nodeping", "ping", "singleton", "compaction"}
	if strings.Join(executed, ",") != strings.Join(want, ",") {
		t.Errorf("executed = %v, want %v", executed, want)
	}
}

func TestBattery_AllChecks_MissingStatsField(t *testing.T) {
	srv := statsServer(t, "OK", `{"ring_members": ["kv1@a", "kv1@b"], "other": 1}`)
	cfg := batteryConfig(t, strings.TrimPrefix(srv.URL, "http://"))
	cfg.Monitoring = true

	runner := &fakeRunner{out: map[string]string{
		"kvd version":                 "1.3.1",
		"systemctl is-active kvstore": "active",
		"sudo -u kvstore kvd ping":    "pong",
		"kv-profile -p 4242 -d 30":    "samples: 3000",
	}}

	status, executed, out := runBattery(t, cfg, Deps{
		Runner: runner,
		Table:  fakeTable{proc: Process{PID: 4242, ResidentBytes: 100 << 20}},
		System: writeSystemProc(t),
	}, true)

	if status != check.StatusCritical {
		t.Fatalf("aggregate = %v, want StatusCritical from the stats check", status)
	}

	want := []string{"config", "service", "process", "system", "nodeping", "ping", "singleton", "stats", "profile", "rss", "compaction"}
	if strings.Join(executed, ",") != strings.Join(want, ",") {
		t.Errorf("executed = %v, want %v", executed, want)
	}

	if !strings.Contains(out, "critical:") {
		t.Errorf("monitoring output missing a critical line:\n%s", out)
	}
}

func TestValidCheckName(t *testing.T) {
	for _, name := range CheckNames {
		if !ValidCheckName(name) {
			t.Errorf("ValidCheckName(%q) = false", name)
		}
	}
	if ValidCheckName("bogus") {
		t.Error("ValidCheckName(bogus) = true")
	}
	if err := UnknownCheckError("bogus"); !strings.Contains(err.Error(), "bogus") {
		t.Errorf("UnknownCheckError = %v", err)
	}
}
