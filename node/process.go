package node

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/prometheus/procfs"

	"github.com/jonwraymond/kvdiag/check"
)

// Process describes a running node process.
type Process struct {
	// PID is the process id.
	PID int

	// ResidentBytes is the resident set size in bytes.
	ResidentBytes uint64
}

// ProcessTable finds the node process among running processes.
type ProcessTable interface {
	// FindByName returns the first process whose executable matches
	// name. Returns ErrProcessNotFound when no process matches; any
	// other error means the table itself could not be queried.
	FindByName(name string) (Process, error)
}

// ProcTable is a ProcessTable backed by the proc filesystem.
type ProcTable struct {
	fs procfs.FS
}

// NewProcTable creates a process table over the default /proc mount.
func NewProcTable() (*ProcTable, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	return &ProcTable{fs: fs}, nil
}

// NewProcTableAt creates a process table over an alternate proc mount.
func NewProcTableAt(mount string) (*ProcTable, error) {
	fs, err := procfs.NewFS(mount)
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	return &ProcTable{fs: fs}, nil
}

// FindByName scans the process table for a process whose comm or
// argv[0] basename equals name.
func (t *ProcTable) FindByName(name string) (Process, error) {
	procs, err := t.fs.AllProcs()
	if err != nil {
		return Process{}, fmt.Errorf("node: reading process table: %w", err)
	}

	for _, p := range procs {
		if !t.matches(p, name) {
			continue
		}

		stat, err := p.Stat()
		if err != nil {
			return Process{}, fmt.Errorf("node: reading stat for pid %d: %w", p.PID, err)
		}
		return Process{
			PID:           p.PID,
			ResidentBytes: uint64(stat.ResidentMemory()),
		}, nil
	}

	return Process{}, ErrProcessNotFound
}

func (t *ProcTable) matches(p procfs.Proc, name string) bool {
	if comm, err := p.Comm(); err == nil && comm == name {
		return true
	}
	if argv, err := p.CmdLine(); err == nil && len(argv) > 0 {
		return filepath.Base(argv[0]) == name
	}
	return false
}

// ProcessChecker verifies the node process is running. Its result
// gates every liveness-dependent check in the standard plan.
type ProcessChecker struct {
	table ProcessTable
	bin   string
}

// NewProcessChecker creates a process liveness checker for the named
// node executable.
func NewProcessChecker(table ProcessTable, bin string) *ProcessChecker {
	return &ProcessChecker{table: table, bin: bin}
}

// Name returns the name of this checker.
func (c *ProcessChecker) Name() string {
	return "process"
}

// Check looks the node process up in the process table.
func (c *ProcessChecker) Check(ctx context.Context) check.Result {
	p, err := c.table.FindByName(c.bin)
	switch {
	case err == nil:
		return check.OK(c.Name(), fmt.Sprintf("node process %s running with pid %d", c.bin, p.PID))
	case isNotFound(err):
		return check.Critical(c.Name(), fmt.Sprintf("node process %s not found", c.bin))
	default:
		return check.Unknown(c.Name(), fmt.Sprintf("process table query failed: %v", err))
	}
}
