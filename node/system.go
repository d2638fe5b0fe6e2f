package node

import (
	"context"
	"fmt"

	"github.com/prometheus/procfs"

	"github.com/jonwraymond/kvdiag/check"
)

// SystemChecker summarizes host load and memory from the proc
// filesystem.
type SystemChecker struct {
	fs procfs.FS
}

// NewSystemChecker creates a system summary checker over the default
// /proc mount.
func NewSystemChecker() (*SystemChecker, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	return &SystemChecker{fs: fs}, nil
}

// NewSystemCheckerAt creates a system summary checker over an
// alternate proc mount.
func NewSystemCheckerAt(mount string) (*SystemChecker, error) {
	fs, err := procfs.NewFS(mount)
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	return &SystemChecker{fs: fs}, nil
}

// Name returns the name of this checker.
func (c *SystemChecker) Name() string {
	return "system"
}

// Check reads load average and memory state. When nothing can be read
// the answer is unknown rather than a fabricated healthy summary.
func (c *SystemChecker) Check(ctx context.Context) check.Result {
	var lines []string

	if load, err := c.fs.LoadAvg(); err == nil {
		lines = append(lines, fmt.Sprintf("load average: %.2f %.2f %.2f", load.Load1, load.Load5, load.Load15))
	}
	if mem, err := c.fs.Meminfo(); err == nil {
		if mem.MemTotal != nil && mem.MemAvailable != nil {
			lines = append(lines, fmt.Sprintf("memory: %d kB total, %d kB available", *mem.MemTotal, *mem.MemAvailable))
		}
	}

	if len(lines) == 0 {
		return check.Unknown(c.Name(), "cannot read system state from proc")
	}
	return check.OK(c.Name(), lines...)
}
