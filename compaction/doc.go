// Package compaction detects storage-engine compaction corruption and
// selects a remediation strategy for it.
//
// The storage engine logs a "Compaction error" marker into a store's
// LOG file when background compaction fails, which indicates potential
// data-file corruption in that store. Diagnostics scans the engine's
// log root for such markers, collapses duplicate hits per store, and
// builds a remediation plan appropriate to the engine version.
//
// # Remediation Eras
//
// Which repair applies depends on the version era (see the version
// package):
//
//   - manual-repair: the operator runs per-store repairs by hand in
//     the engine repair shell, with explicit tuning parameters.
//   - fixer: a dedicated fixer utility is run once per affected store
//     while the node is stopped; distinct stores may be fixed in
//     parallel.
//   - self-heal: the engine repairs itself during normal operation and
//     no direct remediation exists.
//
// Strategies are registered per era, so supporting a new era is a
// single RegisterStrategy call.
//
// # Usage
//
//	diag := compaction.NewDiagnostics(compaction.Config{
//	    LogRoot:     "/var/lib/kvstore/engine",
//	    DataRoot:    "/var/lib/kvstore/engine",
//	    NodeVersion: "1.2.0",
//	})
//	result := diag.Check(ctx)
package compaction
