package compaction

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jonwraymond/kvdiag/check"
	"github.com/jonwraymond/kvdiag/version"
)

// Config configures compaction diagnostics.
type Config struct {
	// LogRoot is the directory scanned recursively for store LOG
	// files. Required.
	LogRoot string

	// DataRoot is the engine data root referenced by remediation
	// transcripts. Default: LogRoot.
	DataRoot string

	// NodeVersion is the raw storage-engine version string used to
	// select the remediation era.
	NodeVersion string

	// FixerBin is the fixer utility named in fixer-era transcripts.
	// Default: "kv-fixer"
	FixerBin string

	// Mode selects the output shape: monitoring mode reports only an
	// affected-file count, interactive mode includes the full
	// remediation transcript.
	Mode check.Mode

	// ScanConcurrency bounds parallel LOG file reads.
	// Default: 8
	ScanConcurrency int
}

// Diagnostics scans for compaction corruption and advises remediation.
type Diagnostics struct {
	config Config
}

// NewDiagnostics creates compaction diagnostics.
func NewDiagnostics(config Config) *Diagnostics {
	if config.DataRoot == "" {
		config.DataRoot = config.LogRoot
	}
	if config.FixerBin == "" {
		config.FixerBin = "kv-fixer"
	}
	if config.ScanConcurrency <= 0 {
		config.ScanConcurrency = 8
	}

	return &Diagnostics{config: config}
}

// Name returns the name of this checker.
func (d *Diagnostics) Name() string {
	return "compaction"
}

// Check runs the diagnosis. Running it twice against an unchanged log
// root yields identical results.
func (d *Diagnostics) Check(ctx context.Context) check.Result {
	hits, err := scan(ctx, d.config.LogRoot, d.config.ScanConcurrency)
	if err != nil {
		// An unreachable path is not the same as "no errors found":
		// the check could not determine an answer.
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return check.Unknown(d.Name(), fmt.Sprintf("cannot read %s", pathErr.Path))
		}
		return check.Unknown(d.Name(), fmt.Sprintf("log scan failed: %v", err))
	}

	if len(hits) == 0 {
		return check.OK(d.Name(), "no compaction errors found")
	}

	if d.config.Mode == check.ModeMonitoring {
		return check.Critical(d.Name(),
			fmt.Sprintf("compaction errors found in %d log files", len(hits)))
	}

	stores := affectedStores(d.config.LogRoot, hits)

	_, era, err := version.Classify(d.config.NodeVersion)
	if err != nil {
		// Never guess the oldest era from an unparseable version: a
		// manual repair against the wrong engine can destroy data.
		return check.Unknown(d.Name(),
			fmt.Sprintf("compaction errors found in %d stores but version %q is unparseable, cannot advise remediation",
				len(stores), d.config.NodeVersion))
	}

	plan, err := BuildPlan(era, PlanRequest{
		Stores:   stores,
		DataRoot: d.config.DataRoot,
		FixerBin: d.config.FixerBin,
	})
	if err != nil {
		return check.Unknown(d.Name(), err.Error())
	}

	lines := make([]string, 0, len(plan.Commands)+1)
	lines = append(lines, fmt.Sprintf("compaction errors found in %d stores", len(plan.Stores)))
	lines = append(lines, plan.Commands...)
	return check.Critical(d.Name(), lines...)
}
