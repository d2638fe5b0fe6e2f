// Package check provides the diagnostic check model and orchestration
// engine for kvdiag.
//
// This package defines the vocabulary shared by every diagnostic: the
// Status severity scale, the Result value produced by a single check
// execution, and the Checker interface. On top of that it provides an
// ordered Registry of named checkers and an Orchestrator that runs a
// Plan of gated steps, aggregates their severities, and renders the
// outcome for either interactive operators or monitoring systems.
//
// # Core Concepts
//
// A Checker is any component that can observe one aspect of a node and
// report a Result. The Status type represents the outcome severity:
// OK, Warning, Critical, or Unknown. Unknown means the check itself
// could not determine an answer and is never reported as healthy.
//
// # Basic Usage
//
//	pingCheck := check.NewCheckerFunc("ping", func(ctx context.Context) check.Result {
//	    if err := probe(ctx); err != nil {
//	        return check.Critical("ping", "node did not respond to ping")
//	    }
//	    return check.OK("ping", "pong")
//	})
//
//	result := pingCheck.Check(ctx)
//	if result.Status == check.StatusCritical {
//	    log.Printf("ping failed: %s", result.Summary())
//	}
//
// # Running a Battery
//
// Use a Registry plus an Orchestrator to run the full battery:
//
//	reg := check.NewRegistry()
//	reg.Register(processCheck)
//	reg.Register(pingCheck)
//
//	orch := check.NewOrchestrator(reg, check.OrchestratorConfig{
//	    Mode: check.ModeMonitoring,
//	    Out:  os.Stdout,
//	})
//
//	plan := check.Plan{
//	    {Check: "process"},
//	    {Check: "ping", When: check.Passed("process")},
//	}
//
//	status, err := orch.Run(ctx, plan)
//	os.Exit(status.ExitCode())
//
// Steps gated by a Condition are skipped, not fabricated as Unknown;
// steps marked BestEffort are displayed but never affect the
// aggregate. Aggregation of an empty set of results yields StatusOK.
package check
