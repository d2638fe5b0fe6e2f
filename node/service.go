package node

import (
	"context"
	"fmt"

	"github.com/jonwraymond/kvdiag/check"
)

// ServiceChecker queries the service manager for the node's unit.
// The result is informational only: the standard plan runs it
// best-effort and never feeds it into the aggregate.
type ServiceChecker struct {
	runner  CommandRunner
	service string
}

// NewServiceChecker creates the service-manager checker.
func NewServiceChecker(runner CommandRunner, service string) *ServiceChecker {
	return &ServiceChecker{runner: runner, service: service}
}

// Name returns the name of this checker.
func (c *ServiceChecker) Name() string {
	return "service"
}

// Check asks the service manager for the unit's state.
func (c *ServiceChecker) Check(ctx context.Context) check.Result {
	out, err := c.runner.Run(ctx, "systemctl", "is-active", c.service)
	if err != nil && out == "" {
		return check.Unknown(c.Name(), fmt.Sprintf("service manager query failed: %v", err))
	}
	// systemctl exits non-zero for inactive units but still reports
	// the state on stdout; the state is the answer either way.
	return check.OK(c.Name(), fmt.Sprintf("service %s: %s", c.service, out))
}
