package check

import (
	"context"
)

// Status represents the severity of a check outcome.
type Status int

const (
	// StatusOK indicates the check passed.
	StatusOK Status = iota
	// StatusWarning indicates the check passed but found something
	// an operator should look at.
	StatusWarning
	// StatusCritical indicates the check failed.
	StatusCritical
	// StatusUnknown indicates the check itself could not determine an
	// answer. Unknown is never reported as healthy.
	StatusUnknown
)

// String returns the monitoring-plugin severity word for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	case StatusCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit code for the status, matching the
// standard monitoring-plugin convention: 0 ok, 1 warning, 2 critical,
// 3 unknown.
func (s Status) ExitCode() int {
	switch s {
	case StatusOK:
		return 0
	case StatusWarning:
		return 1
	case StatusCritical:
		return 2
	default:
		return 3
	}
}

// severity returns the aggregation rank of the status. Unknown ranks
// above Warning so an unresolvable check never reads as healthy, but
// below Critical so a genuine failure still dominates the aggregate.
func (s Status) severity() int {
	switch s {
	case StatusOK:
		return 0
	case StatusWarning:
		return 1
	case StatusUnknown:
		return 2
	case StatusCritical:
		return 3
	default:
		return 2
	}
}

// Result contains the outcome of a single check execution. A Result is
// immutable once produced: it is created by one check, consumed once
// by the orchestrator for aggregation and rendering, then discarded.
type Result struct {
	// Name identifies the check that produced this result.
	Name string

	// Status is the outcome severity.
	Status Status

	// Lines is the ordered human-readable detail. Monitoring mode
	// renders only the first line; interactive mode renders all.
	Lines []string
}

// OK creates a passing result.
func OK(name string, lines ...string) Result {
	return Result{Name: name, Status: StatusOK, Lines: lines}
}

// Warning creates a warning result.
func Warning(name string, lines ...string) Result {
	return Result{Name: name, Status: StatusWarning, Lines: lines}
}

// Critical creates a failing result.
func Critical(name string, lines ...string) Result {
	return Result{Name: name, Status: StatusCritical, Lines: lines}
}

// Unknown creates a result for a check that could not determine an
// answer.
func Unknown(name string, lines ...string) Result {
	return Result{Name: name, Status: StatusUnknown, Lines: lines}
}

// Summary returns the first detail line, or an empty string when the
// result carries no detail.
func (r Result) Summary() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return r.Lines[0]
}

// Aggregate computes the worst-case status of a set of results by the
// ordering OK < Warning < Unknown < Critical. Aggregating an empty
// set yields StatusOK.
func Aggregate(results []Result) Status {
	worst := StatusOK
	for _, r := range results {
		if r.Status.severity() > worst.severity() {
			worst = r.Status
		}
	}
	return worst
}

// Checker is the interface for diagnostic checks. Checks are pure
// functions of external system state: they never mutate shared state
// and derive their result from a single observation attempt.
type Checker interface {
	// Name returns the name of this checker.
	Name() string

	// Check performs the check and returns the result.
	Check(ctx context.Context) Result
}

// CheckerFunc is an adapter to allow ordinary functions to be used as
// Checkers.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc creates a new CheckerFunc.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name returns the name of this checker.
func (f *CheckerFunc) Name() string {
	return f.name
}

// Check performs the check.
func (f *CheckerFunc) Check(ctx context.Context) Result {
	return f.fn(ctx)
}
