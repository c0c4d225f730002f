package analysis

import "strings"

// Severity enum
type Severity string

const (
	SeverityHigh     Severity = "High Risk"
	SeverityModerate Severity = "Moderate Risk"
	SeverityInfo     Severity = "Informational"

	// SeverityError is out-of-band: it marks extraction failure and is
	// never produced by a successful parse.
	SeverityError Severity = "Error"
)

// Rank orders severities for sorting: High < Moderate < Informational < unknown.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityModerate:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Canonical user-facing strings. Clients match on these, do not reword.
const (
	NoRiskText      = "No legal risks or obligations were found in this document."
	NoRisksSummary  = "No risks detected"
	FallbackSummary = "Document Summary"
	FailedTitle     = "Risk Detection Failed"
	NoAPIKeyMessage = "No valid API key available."
)

// RiskEntry is a single extracted clause with its severity tag.
type RiskEntry struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// Result is the canonical analysis output: a title, a display summary and an
// ordered risk list. After Normalize the list is non-empty, duplicate-free
// and severity-sorted.
type Result struct {
	Title   string      `json:"title,omitempty"`
	Summary string      `json:"summary"`
	Risks   []RiskEntry `json:"risk_factors"`
}

// Failed reports whether the result is the sentinel produced when every
// completion provider was unavailable or failing. Callers must present it as
// an error, not as a finding.
func (r Result) Failed() bool {
	for _, e := range r.Risks {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FailedResult builds the sentinel result for a completion failure.
func FailedResult(reason string) Result {
	if strings.TrimSpace(reason) == "" {
		reason = NoAPIKeyMessage
	}
	return Result{
		Title: FailedTitle,
		Risks: []RiskEntry{{Text: reason, Severity: SeverityError}},
	}
}
