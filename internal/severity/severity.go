// Package severity orders the diagnostics raised while binding operations:
// Info < Warning < Critical.
package severity

type Severity int

const (
	// SeverityInfo records a choice the generator made on the caller's
	// behalf, such as defaulting a read to single-item shape.
	SeverityInfo Severity = iota

	// SeverityWarning means an entry was skipped or degraded but the
	// artifacts are still consistent.
	SeverityWarning

	// SeverityCritical means the artifacts would be wrong if written.
	// The writer refuses to commit while any critical issue is present.
	SeverityCritical
)

var names = [...]string{SeverityInfo: "info", SeverityWarning: "warning", SeverityCritical: "critical"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// AtLeast reports whether s is min or more severe.
func (s Severity) AtLeast(min Severity) bool { return s >= min }
