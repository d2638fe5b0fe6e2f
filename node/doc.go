// Package node implements the kvdiag check battery against a single
// clustered key-value store node.
//
// Each check is a pure function of external system state producing one
// check.Result. The external collaborators — the process table, the
// node's admin HTTP interface, the service manager, the privileged
// local ping, the sampling profiler — sit behind small interfaces so
// checks stay testable and the collaborators stay opaque: kvdiag hands
// them fully-formed arguments and interprets only exit status and
// output text.
//
// # The Battery
//
// NewRegistry wires the standard checks against a config.Config;
// StandardPlan orders them with the liveness gating: probes that need
// a running process (local ping, remote ping, stats, singleton) run
// only when the process check passes, and the ok-to-start diagnostic
// runs instead when it does not. The service-manager query and the
// profiler capture are best-effort and never affect the aggregate.
//
//	reg, err := node.NewRegistry(ctx, cfg, node.Deps{})
//	if err != nil {
//	    return err
//	}
//	orch := check.NewOrchestrator(reg, check.OrchestratorConfig{Mode: mode})
//	status, err := orch.Run(ctx, node.StandardPlan(cfg.AllChecks))
package node
