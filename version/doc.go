// Package version classifies storage-engine version strings into
// remediation eras.
//
// A raw version string such as "1.3.1v1" is reduced to its leading
// dotted-numeric prefix, the dots are removed, and the remaining digit
// sequence is read as a base-10 integer ("1.3.1" becomes 131). The
// numeric form and the raw prefix together select the Era, which
// decides which compaction-repair strategy applies to the node.
//
// # Known Limitation
//
// The digit-concatenation comparison is not numerically sound across
// differing digit-group widths: "1.10" produces 110 and would compare
// below "1.9"'s 19-era equivalents incorrectly. This behavior is
// deliberate and must be preserved as-is: the era thresholds were
// chosen against this scheme's actual output, not against semantic
// versioning.
//
//	num, era, err := version.Classify("1.3.1v1")
//	// num == 131, era == version.EraSelfHeal
package version
