package version

import "errors"

var (
	// ErrNoVersion indicates the input contains no leading digit and
	// cannot be classified. Callers must treat this as an unknown
	// version, never as the oldest era.
	ErrNoVersion = errors.New("version: no leading version digits")
)
