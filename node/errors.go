package node

import "errors"

var (
	// ErrProcessNotFound indicates no running process matched the
	// node executable.
	ErrProcessNotFound = errors.New("node: process not found")

	// ErrUnexpectedStatus indicates an admin HTTP probe returned a
	// non-success status code.
	ErrUnexpectedStatus = errors.New("node: unexpected http status")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrProcessNotFound)
}
