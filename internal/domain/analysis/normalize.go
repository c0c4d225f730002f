package analysis

import "strings"

// Normalize applies the externally visible shape to a parsed result:
// the "no risk" placeholder is dropped when real clauses exist, duplicates
// are removed keeping the first occurrence, an empty list is replaced with
// the single placeholder entry, and the display summary is derived from the
// title. Normalize is idempotent.
func Normalize(r Result) Result {
	kept := make([]RiskEntry, 0, len(r.Risks))
	seen := make(map[string]struct{}, len(r.Risks))
	for _, e := range r.Risks {
		text := strings.TrimSpace(e.Text)
		if strings.EqualFold(text, NoRiskText) {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		kept = append(kept, e)
	}

	if len(kept) == 0 {
		r.Summary = NoRisksSummary
		r.Risks = []RiskEntry{{Text: NoRiskText, Severity: SeverityInfo}}
		return r
	}

	// Guard against the model claiming "no risks" in the title while
	// entries exist.
	if strings.EqualFold(strings.TrimSpace(r.Title), NoRisksSummary) {
		r.Summary = FallbackSummary
	} else {
		r.Summary = r.Title
	}

	SortBySeverity(kept)
	r.Risks = kept
	return r
}
