package check

import (
	"context"
	"io"
	"os"
	"time"
)

// Mode selects how results are rendered. It is fixed at startup and
// read-only for the rest of the run.
type Mode int

const (
	// ModeInteractive renders a labeled header and full multi-line
	// detail for each check, for human operators.
	ModeInteractive Mode = iota
	// ModeMonitoring renders one terse severity-prefixed line per
	// check, for automated status polling.
	ModeMonitoring
)

// Condition decides whether a step runs, given the results of all
// prior steps keyed by check name.
type Condition func(prior map[string]Result) bool

// Passed returns a condition that holds when the named prior check
// completed with StatusOK.
func Passed(name string) Condition {
	return func(prior map[string]Result) bool {
		r, ok := prior[name]
		return ok && r.Status == StatusOK
	}
}

// NotPassed returns a condition that holds when the named prior check
// ran and did not complete with StatusOK.
func NotPassed(name string) Condition {
	return func(prior map[string]Result) bool {
		r, ok := prior[name]
		return ok && r.Status != StatusOK
	}
}

// Step is one entry of an orchestration plan.
type Step struct {
	// Check is the registry name of the checker to run.
	Check string

	// When gates the step; nil means the step always runs. A gated
	// step that does not run produces no result at all, it is not
	// fabricated as Unknown.
	When Condition

	// BestEffort marks a step whose result is displayed but excluded
	// from aggregation, and whose absence from the registry is
	// tolerated. Used for informational side observations such as the
	// service-manager query and the profiler capture.
	BestEffort bool
}

// Plan is an ordered sequence of steps executed on a single control
// flow. There is no parallelism between steps and no retry anywhere:
// each result is derived from a single observation attempt.
type Plan []Step

// Instrument receives every executed result together with its wall
// duration. Used to hook telemetry into a run without coupling this
// package to an exporter.
type Instrument func(result Result, elapsed time.Duration)

// OrchestratorConfig configures a run.
type OrchestratorConfig struct {
	// Mode selects the rendering style.
	// Default: ModeInteractive
	Mode Mode

	// Out receives the rendered results.
	// Default: os.Stdout
	Out io.Writer

	// Instrument, when non-nil, observes every executed result.
	Instrument Instrument
}

// Orchestrator runs plans against a registry of checkers.
type Orchestrator struct {
	config   OrchestratorConfig
	registry *Registry
}

// NewOrchestrator creates a new orchestrator.
func NewOrchestrator(registry *Registry, config ...OrchestratorConfig) *Orchestrator {
	cfg := OrchestratorConfig{
		Mode: ModeInteractive,
		Out:  os.Stdout,
	}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.Out == nil {
			cfg.Out = os.Stdout
		}
	}

	return &Orchestrator{config: cfg, registry: registry}
}

// Run executes the plan in order, renders each result as it is
// produced, and returns the aggregate status of every executed
// non-best-effort step. Steps whose condition does not hold are
// skipped. A best-effort step whose checker is missing is silently
// ignored; a regular step whose checker is missing fails the run with
// ErrCheckerNotFound.
func (o *Orchestrator) Run(ctx context.Context, plan Plan) (Status, error) {
	if len(plan) == 0 {
		return StatusUnknown, ErrEmptyPlan
	}

	prior := make(map[string]Result, len(plan))
	aggregated := make([]Result, 0, len(plan))

	for _, step := range plan {
		if step.When != nil && !step.When(prior) {
			continue
		}

		checker, ok := o.registry.Lookup(step.Check)
		if !ok {
			if step.BestEffort {
				continue
			}
			return StatusUnknown, ErrCheckerNotFound
		}

		result := o.execute(ctx, checker)
		prior[step.Check] = result
		if !step.BestEffort {
			aggregated = append(aggregated, result)
		}

		o.render(result)
	}

	o.finish()
	return Aggregate(aggregated), nil
}

// RunOne executes exactly one named check, bypassing the plan, and
// returns its status.
func (o *Orchestrator) RunOne(ctx context.Context, name string) (Status, error) {
	checker, ok := o.registry.Lookup(name)
	if !ok {
		return StatusUnknown, ErrCheckerNotFound
	}

	result := o.execute(ctx, checker)
	o.render(result)
	o.finish()
	return result.Status, nil
}

func (o *Orchestrator) execute(ctx context.Context, checker Checker) Result {
	start := time.Now()
	result := checker.Check(ctx)
	if result.Name == "" {
		result.Name = checker.Name()
	}

	if o.config.Instrument != nil {
		o.config.Instrument(result, time.Since(start))
	}
	return result
}
