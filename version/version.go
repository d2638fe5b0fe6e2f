package version

import (
	"strconv"
	"strings"
)

// Era identifies which compaction-repair strategy applies to a
// storage-engine version. It is derived deterministically from the
// version string and has no independent identity.
type Era int

const (
	// EraManualRepair covers engines older than 1.2: corruption is
	// repaired by hand through the engine's repair shell.
	EraManualRepair Era = iota
	// EraFixer covers the 1.2 line: a dedicated fixer utility repairs
	// stores while the node is stopped.
	EraFixer
	// EraSelfHeal covers engines newer than 1.2: compaction errors
	// are repaired automatically by the engine itself.
	EraSelfHeal
)

// String returns a short identifier for the era.
func (e Era) String() string {
	switch e {
	case EraManualRepair:
		return "manual-repair"
	case EraFixer:
		return "fixer"
	case EraSelfHeal:
		return "self-heal"
	default:
		return "unknown"
	}
}

// fixerPrefix is the raw-string prefix that pins a version to the
// fixer era regardless of its numeric form.
const fixerPrefix = "1.2"

// Classify reduces a raw version string to its comparable numeric form
// and selects the remediation era.
//
// The leading dotted-numeric prefix is kept, any suffix is stripped,
// dots are removed, and the digit sequence is parsed as a base-10
// integer. Versions below 120 fall into EraManualRepair; raw strings
// beginning with "1.2" fall into EraFixer (the string-prefix rule wins
// over the numeric comparison); everything else is EraSelfHeal.
//
// Returns ErrNoVersion when the input carries no leading digit.
func Classify(raw string) (int, Era, error) {
	prefix := numericPrefix(raw)
	digits := strings.ReplaceAll(prefix, ".", "")
	if digits == "" {
		return 0, 0, ErrNoVersion
	}

	num, err := strconv.Atoi(digits)
	if err != nil {
		return 0, 0, ErrNoVersion
	}

	switch {
	case num < 120:
		return num, EraManualRepair, nil
	case strings.HasPrefix(raw, fixerPrefix):
		return num, EraFixer, nil
	default:
		return num, EraSelfHeal, nil
	}
}

// numericPrefix returns the longest leading run of digits and dots.
func numericPrefix(raw string) string {
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c < '0' || c > '9') && c != '.' {
			return raw[:i]
		}
	}
	return raw
}
