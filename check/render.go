package check

import "fmt"

// render writes one result in the configured mode.
//
// Interactive mode prints a labeled header followed by every detail
// line. Monitoring mode prints exactly one line per check, the first
// detail line prefixed by the severity word, so the output can be
// consumed by a status poller.
func (o *Orchestrator) render(r Result) {
	switch o.config.Mode {
	case ModeMonitoring:
		fmt.Fprintf(o.config.Out, "%s: %s\n", r.Status, r.Summary())
	default:
		fmt.Fprintf(o.config.Out, "== %s ==\n", r.Name)
		for _, line := range r.Lines {
			fmt.Fprintln(o.config.Out, line)
		}
	}
}

// finish terminates a run. Interactive output ends with a trailing
// blank line; monitoring output must not.
func (o *Orchestrator) finish() {
	if o.config.Mode == ModeInteractive {
		fmt.Fprintln(o.config.Out)
	}
}
