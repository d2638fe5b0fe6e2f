package node

import (
	"context"
	"fmt"

	"github.com/jonwraymond/kvdiag/check"
)

// pingBody is the literal body a healthy node answers on /ping.
const pingBody = "OK"

// RemotePingChecker probes the node's /ping endpoint over HTTP.
type RemotePingChecker struct {
	probe *Probe
}

// NewRemotePingChecker creates the HTTP ping checker.
func NewRemotePingChecker(probe *Probe) *RemotePingChecker {
	return &RemotePingChecker{probe: probe}
}

// Name returns the name of this checker.
func (c *RemotePingChecker) Name() string {
	return "ping"
}

// Check fetches /ping. An empty body, a wrong body, or a timeout are
// all the same critical failure; only the literal "OK" passes.
func (c *RemotePingChecker) Check(ctx context.Context) check.Result {
	body, err := c.probe.Ping(ctx)
	if err != nil {
		return check.Critical(c.Name(), fmt.Sprintf("ping request failed: %v", err))
	}
	if body != pingBody {
		return check.Critical(c.Name(), fmt.Sprintf("unexpected ping response %q", body))
	}
	return check.OK(c.Name(), "node answered ping")
}

// LocalPingChecker runs the node's administrative ping command on the
// local host, elevated to the node's service account.
type LocalPingChecker struct {
	runner  CommandRunner
	bin     string
	account string
}

// NewLocalPingChecker creates the local administrative ping checker.
func NewLocalPingChecker(runner CommandRunner, bin, account string) *LocalPingChecker {
	return &LocalPingChecker{runner: runner, bin: bin, account: account}
}

// Name returns the name of this checker.
func (c *LocalPingChecker) Name() string {
	return "nodeping"
}

// Check invokes the administrative ping under the service account.
func (c *LocalPingChecker) Check(ctx context.Context) check.Result {
	out, err := c.runner.Run(ctx, "sudo", "-u", c.account, c.bin, "ping")
	if err != nil {
		lines := []string{fmt.Sprintf("local ping failed: %v", err)}
		if out != "" {
			lines = append(lines, out)
		}
		return check.Critical(c.Name(), lines...)
	}

	if out == "" {
		out = "local ping succeeded"
	}
	return check.OK(c.Name(), out)
}
