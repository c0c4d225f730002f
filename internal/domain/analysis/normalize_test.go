package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		in          Result
		wantSummary string
		wantRisks   []RiskEntry
	}{
		{
			name: "Summary From Title",
			in: Result{
				Title: "Rental Risks",
				Risks: []RiskEntry{{Text: "Late fee applies", Severity: SeverityHigh}},
			},
			wantSummary: "Rental Risks",
			wantRisks:   []RiskEntry{{Text: "Late fee applies", Severity: SeverityHigh}},
		},
		{
			name:        "Empty List Gets Sentinel",
			in:          Result{Title: "Lease Agreement"},
			wantSummary: NoRisksSummary,
			wantRisks:   []RiskEntry{{Text: NoRiskText, Severity: SeverityInfo}},
		},
		{
			name: "Sentinel Only Collapses To No Risks",
			in: Result{
				Title: "No risks detected",
				Risks: []RiskEntry{{Text: NoRiskText, Severity: SeverityInfo}},
			},
			wantSummary: NoRisksSummary,
			wantRisks:   []RiskEntry{{Text: NoRiskText, Severity: SeverityInfo}},
		},
		{
			name: "Sentinel Dropped When Real Clauses Exist",
			in: Result{
				Title: "Rental Risks",
				Risks: []RiskEntry{
					{Text: NoRiskText, Severity: SeverityInfo},
					{Text: "Late fee applies", Severity: SeverityHigh},
				},
			},
			wantSummary: "Rental Risks",
			wantRisks:   []RiskEntry{{Text: "Late fee applies", Severity: SeverityHigh}},
		},
		{
			name: "Duplicates Removed Keeping First",
			in: Result{
				Title: "Rental Risks",
				Risks: []RiskEntry{
					{Text: "Late fee applies", Severity: SeverityHigh},
					{Text: "  Late fee applies  ", Severity: SeverityHigh},
					{Text: "Keep a copy", Severity: SeverityInfo},
				},
			},
			wantSummary: "Rental Risks",
			wantRisks: []RiskEntry{
				{Text: "Late fee applies", Severity: SeverityHigh},
				{Text: "Keep a copy", Severity: SeverityInfo},
			},
		},
		{
			name: "No Risks Title With Real Clauses Falls Back",
			in: Result{
				Title: "No risks detected",
				Risks: []RiskEntry{{Text: "Late fee applies", Severity: SeverityHigh}},
			},
			wantSummary: FallbackSummary,
			wantRisks:   []RiskEntry{{Text: "Late fee applies", Severity: SeverityHigh}},
		},
		{
			name: "Output Sorted By Severity",
			in: Result{
				Title: "Mixed",
				Risks: []RiskEntry{
					{Text: "Keep a copy", Severity: SeverityInfo},
					{Text: "Deposit withheld", Severity: SeverityModerate},
					{Text: "Late fee applies", Severity: SeverityHigh},
				},
			},
			wantSummary: "Mixed",
			wantRisks: []RiskEntry{
				{Text: "Late fee applies", Severity: SeverityHigh},
				{Text: "Deposit withheld", Severity: SeverityModerate},
				{Text: "Keep a copy", Severity: SeverityInfo},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.wantSummary, got.Summary)
			assert.Equal(t, tt.wantRisks, got.Risks)
			assert.NotEmpty(t, got.Risks)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []Result{
		{},
		{Title: "Rental Risks", Risks: []RiskEntry{
			{Text: "Keep a copy", Severity: SeverityInfo},
			{Text: "Late fee applies", Severity: SeverityHigh},
			{Text: "Late fee applies", Severity: SeverityHigh},
		}},
		{Title: "No risks detected", Risks: []RiskEntry{{Text: NoRiskText, Severity: SeverityInfo}}},
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeProperties(t *testing.T) {
	// Arbitrary messy input: duplicates, sentinel noise, unsorted severities.
	in := Result{
		Title: "Messy",
		Risks: []RiskEntry{
			{Text: "Keep a copy", Severity: SeverityInfo},
			{Text: NoRiskText, Severity: SeverityInfo},
			{Text: "Late fee applies", Severity: SeverityHigh},
			{Text: "Keep a copy", Severity: SeverityInfo},
			{Text: "Deposit withheld", Severity: SeverityModerate},
		},
	}
	got := Normalize(in)

	assert.NotEmpty(t, got.Risks)

	seen := map[string]bool{}
	for i, e := range got.Risks {
		assert.False(t, seen[e.Text], "duplicate entry %q", e.Text)
		seen[e.Text] = true
		if i > 0 {
			assert.LessOrEqual(t, got.Risks[i-1].Severity.Rank(), e.Severity.Rank())
		}
	}
}

func TestFailedResult(t *testing.T) {
	r := FailedResult("")
	assert.Equal(t, FailedTitle, r.Title)
	assert.True(t, r.Failed())
	assert.Equal(t, []RiskEntry{{Text: NoAPIKeyMessage, Severity: SeverityError}}, r.Risks)

	r = FailedResult("provider timeout")
	assert.Equal(t, []RiskEntry{{Text: "provider timeout", Severity: SeverityError}}, r.Risks)
	assert.True(t, r.Failed())
}
