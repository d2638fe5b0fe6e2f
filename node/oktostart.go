package node

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/jonwraymond/kvdiag/check"
)

// OkToStartChecker decides whether it is safe to start the node: no
// instance already running, the engine directory reachable, and the
// listen address free.
type OkToStartChecker struct {
	table   ProcessTable
	bin     string
	logRoot string
	addr    string
}

// NewOkToStartChecker creates the start-safety checker. addr is the
// host:port the node would listen on.
func NewOkToStartChecker(table ProcessTable, bin, logRoot, addr string) *OkToStartChecker {
	return &OkToStartChecker{table: table, bin: bin, logRoot: logRoot, addr: addr}
}

// Name returns the name of this checker.
func (c *OkToStartChecker) Name() string {
	return "oktostart"
}

// Check verifies the preconditions for starting the node.
func (c *OkToStartChecker) Check(ctx context.Context) check.Result {
	p, err := c.table.FindByName(c.bin)
	switch {
	case err == nil:
		return check.Critical(c.Name(),
			fmt.Sprintf("node already running with pid %d, do not start a second instance", p.PID))
	case !isNotFound(err):
		return check.Unknown(c.Name(), fmt.Sprintf("process table query failed: %v", err))
	}

	if _, err := os.Stat(c.logRoot); err != nil {
		return check.Critical(c.Name(), fmt.Sprintf("engine directory %s is not accessible", c.logRoot))
	}

	// A listener on the node's address with no node process means
	// something else holds the port.
	conn, err := net.DialTimeout("tcp", c.addr, time.Second)
	if err == nil {
		conn.Close()
		return check.Warning(c.Name(), fmt.Sprintf("listen address %s is already in use", c.addr))
	}

	return check.OK(c.Name(), "clear to start")
}
