// Package models holds the closed enumerations shared by the local
// analysis path and the orchestrated path.
package models

// Severity classifies anomalies and role findings.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the aggregation ordering for a severity label. Unknown
// labels rank below medium so a role returning free-form severities
// never outranks a real finding.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	default:
		return 1
	}
}

// IsElevated reports whether the severity is high or critical.
func (s Severity) IsElevated() bool {
	return s == SeverityHigh || s == SeverityCritical
}
