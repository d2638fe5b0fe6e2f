package check

import "errors"

var (
	// ErrCheckerNotFound indicates a named checker is not registered.
	ErrCheckerNotFound = errors.New("check: checker not found")

	// ErrEmptyPlan indicates an orchestration plan contains no steps.
	ErrEmptyPlan = errors.New("check: empty plan")
)
