package node

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jonwraymond/kvdiag/check"
)

// ProfileChecker captures a sampling profile of the node process. It
// is inherently best-effort: the standard plan never aggregates it,
// and an unavailable profiler skips the capture rather than failing
// the run.
type ProfileChecker struct {
	runner      CommandRunner
	table       ProcessTable
	bin         string
	profilerBin string
	window      int // sampling window in seconds
}

// NewProfileChecker creates the sampling profile checker.
func NewProfileChecker(runner CommandRunner, table ProcessTable, bin, profilerBin string) *ProfileChecker {
	return &ProfileChecker{
		runner:      runner,
		table:       table,
		bin:         bin,
		profilerBin: profilerBin,
		window:      30,
	}
}

// Name returns the name of this checker.
func (c *ProfileChecker) Name() string {
	return "profile"
}

// Check runs the profiler against the node's pid for the sampling
// window and relays its output.
func (c *ProfileChecker) Check(ctx context.Context) check.Result {
	if _, err := c.runner.LookPath(c.profilerBin); err != nil {
		return check.Unknown(c.Name(), fmt.Sprintf("profiler %s not available, skipping capture", c.profilerBin))
	}

	p, err := c.table.FindByName(c.bin)
	if isNotFound(err) {
		return check.Unknown(c.Name(), "node process not running, nothing to profile")
	}
	if err != nil {
		return check.Unknown(c.Name(), fmt.Sprintf("process table query failed: %v", err))
	}

	out, err := c.runner.Run(ctx, c.profilerBin,
		"-p", strconv.Itoa(p.PID),
		"-d", strconv.Itoa(c.window))
	if err != nil {
		return check.Unknown(c.Name(), fmt.Sprintf("profiler failed: %v", err))
	}

	lines := []string{fmt.Sprintf("profile captured for pid %d", p.PID)}
	if out != "" {
		lines = append(lines, out)
	}
	return check.OK(c.Name(), lines...)
}
