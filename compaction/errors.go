package compaction

import "errors"

var (
	// ErrNoStrategy indicates no remediation strategy is registered
	// for an era.
	ErrNoStrategy = errors.New("compaction: no strategy registered for era")
)
