package node

import (
	"context"
	"os/exec"
	"strings"
)

// CommandRunner executes an external collaborator and returns its
// combined output. Implementations interpret nothing: exit status and
// output text flow back to the check that asked.
type CommandRunner interface {
	// Run executes name with args and returns trimmed combined
	// stdout/stderr. A non-zero exit is returned as an error.
	Run(ctx context.Context, name string, args ...string) (string, error)

	// LookPath reports whether name resolves to an executable.
	LookPath(name string) (string, error)
}

// ExecRunner runs collaborators through os/exec.
type ExecRunner struct{}

// Run executes the command and returns its trimmed combined output.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

// LookPath resolves name against PATH.
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// DiscoverVersion asks the node binary for its storage-engine version
// string. The raw output is classified later; discovery failures are
// the caller's to absorb.
func DiscoverVersion(ctx context.Context, runner CommandRunner, bin string) (string, error) {
	out, err := runner.Run(ctx, bin, "version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
