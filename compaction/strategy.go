package compaction

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jonwraymond/kvdiag/version"
)

// Engine tuning parameters echoed into the manual repair transcript.
// Repairing with mismatched options can rewrite data files with the
// wrong layout, so the transcript always states them explicitly.
const (
	repairMaxOpenFiles = 2000
	repairBlockSize    = 32768
	repairCacheSize    = 536870912
	repairSyncWrites   = true
)

// PlanRequest carries the inputs a strategy needs to describe the
// repair for a set of affected stores.
type PlanRequest struct {
	// Stores is the ordered, deduplicated list of affected store
	// identifiers.
	Stores []string

	// DataRoot is the engine data root; a store's data directory is
	// DataRoot/<store>.
	DataRoot string

	// FixerBin is the fixer utility invoked in the fixer era.
	FixerBin string
}

// Plan is the remediation selected for one diagnosis. It is built
// once per check invocation and not persisted.
type Plan struct {
	// Era is the remediation era the node's version falls into.
	Era version.Era

	// Stores is the ordered, deduplicated list of affected stores.
	Stores []string

	// Commands is the ordered operator-facing remediation transcript.
	Commands []string
}

// Strategy renders the remediation transcript for one era.
type Strategy func(req PlanRequest) []string

var (
	strategyMu sync.RWMutex
	strategies = map[version.Era]Strategy{
		version.EraManualRepair: manualRepairStrategy,
		version.EraFixer:        fixerStrategy,
		version.EraSelfHeal:     selfHealStrategy,
	}
)

// RegisterStrategy installs the strategy for an era, replacing any
// existing registration. Supporting a new era is a single call here.
func RegisterStrategy(era version.Era, s Strategy) {
	strategyMu.Lock()
	defer strategyMu.Unlock()
	strategies[era] = s
}

// BuildPlan selects the registered strategy for the era and renders
// the remediation plan for the affected stores.
func BuildPlan(era version.Era, req PlanRequest) (Plan, error) {
	strategyMu.RLock()
	strategy, ok := strategies[era]
	strategyMu.RUnlock()

	if !ok {
		return Plan{}, fmt.Errorf("%w: %s", ErrNoStrategy, era)
	}

	return Plan{
		Era:      era,
		Stores:   req.Stores,
		Commands: strategy(req),
	}, nil
}

// manualRepairStrategy emits the pre-1.2 repair-shell transcript: the
// engine tuning parameters, then one repair invocation per store.
func manualRepairStrategy(req PlanRequest) []string {
	lines := []string{
		"open the engine repair shell on the node and run each repair below",
		fmt.Sprintf("repair options: max_open_files=%d block_size=%d cache_size=%d sync=%t data_root=%s",
			repairMaxOpenFiles, repairBlockSize, repairCacheSize, repairSyncWrites, req.DataRoot),
	}
	for _, store := range req.Stores {
		lines = append(lines, fmt.Sprintf("  repair %s", filepath.Join(req.DataRoot, store)))
	}
	return lines
}

// fixerStrategy emits one fixer invocation per store for the 1.2 era.
// The node must be stopped first; invocations for distinct stores do
// not share files and may run concurrently to saturate parallel disks.
func fixerStrategy(req PlanRequest) []string {
	lines := []string{
		"stop the node before running the fixer",
		"invocations for distinct stores are safe to run concurrently",
	}
	for _, store := range req.Stores {
		lines = append(lines, fmt.Sprintf("  %s %s", req.FixerBin, filepath.Join(req.DataRoot, store)))
	}
	return lines
}

// selfHealStrategy covers post-1.2 engines, which repair compaction
// errors on their own during normal operation.
func selfHealStrategy(req PlanRequest) []string {
	return []string{
		"this engine version repairs compaction errors automatically during normal operation",
		"if the errors persist after the node has been running, contact support",
	}
}
