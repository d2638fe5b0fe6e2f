package node

import (
	"context"
	"fmt"

	"github.com/jonwraymond/kvdiag/check"
)

// StatsChecker verifies the node's /stats payload carries the
// configured counter field.
type StatsChecker struct {
	probe *Probe
	field string
}

// NewStatsChecker creates the stats counter checker.
func NewStatsChecker(probe *Probe, field string) *StatsChecker {
	return &StatsChecker{probe: probe, field: field}
}

// Name returns the name of this checker.
func (c *StatsChecker) Name() string {
	return "stats"
}

// Check fetches /stats and requires the counter field to be present
// and non-empty. A timeout or a missing field are both critical.
func (c *StatsChecker) Check(ctx context.Context) check.Result {
	stats, err := c.probe.Stats(ctx)
	if err != nil {
		return check.Critical(c.Name(), fmt.Sprintf("stats fetch failed: %v", err))
	}

	value, ok := stats[c.field]
	if !ok {
		return check.Critical(c.Name(), fmt.Sprintf("stats field %q missing", c.field))
	}
	if value == nil || value == "" {
		return check.Critical(c.Name(), fmt.Sprintf("stats field %q empty", c.field))
	}

	return check.OK(c.Name(), fmt.Sprintf("stats field %q = %v", c.field, value))
}

// SingletonChecker counts the cluster-membership ring. A node that is
// its own entire cluster is a misconfiguration, not a small cluster.
type SingletonChecker struct {
	probe *Probe
	field string
}

// NewSingletonChecker creates the cluster-of-one checker.
func NewSingletonChecker(probe *Probe, field string) *SingletonChecker {
	return &SingletonChecker{probe: probe, field: field}
}

// Name returns the name of this checker.
func (c *SingletonChecker) Name() string {
	return "singleton"
}

// Check fetches /stats and counts the ring-membership list. Every
// failure mode — fetch, field extraction, or count — collapses to
// unknown with a stage-specific message; unknown is never ok and
// never critical.
func (c *SingletonChecker) Check(ctx context.Context) check.Result {
	stats, err := c.probe.Stats(ctx)
	if err != nil {
		return check.Unknown(c.Name(), fmt.Sprintf("stats fetch failed: %v", err))
	}

	raw, ok := stats[c.field]
	if !ok {
		return check.Unknown(c.Name(), fmt.Sprintf("membership field %q missing from stats", c.field))
	}

	members, ok := raw.([]any)
	if !ok {
		return check.Unknown(c.Name(), fmt.Sprintf("membership field %q is not a list", c.field))
	}

	switch n := len(members); {
	case n == 0:
		return check.Unknown(c.Name(), "membership list is empty")
	case n == 1:
		return check.Critical(c.Name(), "node is the only ring member, a cluster of one is a misconfiguration")
	default:
		return check.OK(c.Name(), fmt.Sprintf("%d ring members", n))
	}
}
