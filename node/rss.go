package node

import (
	"context"
	"fmt"

	"github.com/jonwraymond/kvdiag/check"
)

// RSSCheckerConfig configures the resident-memory checker.
type RSSCheckerConfig struct {
	// WarnBytes triggers a warning when resident memory strictly
	// exceeds it. Sitting exactly at the threshold is not a warning.
	WarnBytes uint64

	// CritBytes triggers a critical result when resident memory
	// strictly exceeds it.
	CritBytes uint64
}

// RSSChecker compares the node process's resident memory against the
// configured thresholds.
type RSSChecker struct {
	table  ProcessTable
	bin    string
	config RSSCheckerConfig
}

// NewRSSChecker creates a resident-memory checker.
func NewRSSChecker(table ProcessTable, bin string, config RSSCheckerConfig) *RSSChecker {
	return &RSSChecker{table: table, bin: bin, config: config}
}

// Name returns the name of this checker.
func (c *RSSChecker) Name() string {
	return "rss"
}

// Check reads the process's resident set size. When the process id or
// the OS query is unavailable the answer is unknown, never healthy.
func (c *RSSChecker) Check(ctx context.Context) check.Result {
	p, err := c.table.FindByName(c.bin)
	if isNotFound(err) {
		return check.Unknown(c.Name(), "node process not running, resident memory unavailable")
	}
	if err != nil {
		return check.Unknown(c.Name(), fmt.Sprintf("resident memory query failed: %v", err))
	}

	switch {
	case p.ResidentBytes > c.config.CritBytes:
		return check.Critical(c.Name(),
			fmt.Sprintf("resident memory %d bytes exceeds critical threshold %d", p.ResidentBytes, c.config.CritBytes))
	case p.ResidentBytes > c.config.WarnBytes:
		return check.Warning(c.Name(),
			fmt.Sprintf("resident memory %d bytes exceeds warning threshold %d", p.ResidentBytes, c.config.WarnBytes))
	default:
		return check.OK(c.Name(),
			fmt.Sprintf("resident memory %d bytes within thresholds", p.ResidentBytes))
	}
}
