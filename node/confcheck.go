package node

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/kvdiag/check"
	"github.com/jonwraymond/kvdiag/config"
)

// ConfigChecker displays the resolved run configuration and the
// discovered node version. It warns when the configured probe auth
// token has already expired; otherwise it always passes.
type ConfigChecker struct {
	cfg         config.Config
	nodeVersion string
	now         func() time.Time
}

// NewConfigChecker creates the configuration display checker.
// nodeVersion is the discovered or overridden version string and may
// be empty when discovery failed.
func NewConfigChecker(cfg config.Config, nodeVersion string) *ConfigChecker {
	return &ConfigChecker{cfg: cfg, nodeVersion: nodeVersion, now: time.Now}
}

// Name returns the name of this checker.
func (c *ConfigChecker) Name() string {
	return "config"
}

// Check renders the effective configuration.
func (c *ConfigChecker) Check(ctx context.Context) check.Result {
	version := c.nodeVersion
	if version == "" {
		version = "unknown"
	}

	lines := []string{
		fmt.Sprintf("node binary: %s", c.cfg.NodeBin),
		fmt.Sprintf("node version: %s", version),
		fmt.Sprintf("admin interface: %s", c.cfg.BaseURL()),
		fmt.Sprintf("engine log root: %s", c.cfg.LogRoot),
		fmt.Sprintf("request timeout: %s", c.cfg.Timeout()),
		fmt.Sprintf("rss thresholds: warn>%d crit>%d bytes", c.cfg.RSSWarnBytes, c.cfg.RSSCritBytes),
		fmt.Sprintf("service: %s", c.cfg.Service),
	}

	// The warning leads so monitoring mode surfaces it as the line.
	if warning, expired := TokenWarning(c.cfg.AuthToken, c.now()); expired {
		return check.Warning(c.Name(), append([]string{warning}, lines...)...)
	}
	return check.OK(c.Name(), lines...)
}
