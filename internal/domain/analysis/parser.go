package analysis

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// riskLine matches "- [<Severity>] clause text" with one of the three
// recognized tags. Anything else on a line is ignored, not an error.
var riskLine = regexp.MustCompile(`^-\s+\[(High Risk|Moderate Risk|Informational)\]\s+(.*)$`)

// ParseCompletion converts raw completion text into a Result. The title comes
// from the last "Title:" line carrying more than 3 characters; when none is
// present it is derived from the original document text, then from the
// filename, and may end up empty. Risk entries are stable-sorted by severity.
func ParseCompletion(completion, originalText, filename string) Result {
	var result Result

	for _, line := range strings.Split(completion, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "title:") {
			if title := strings.TrimSpace(line[len("title:"):]); utf8.RuneCountInString(title) > 3 {
				result.Title = title
			}
			continue
		}
		if m := riskLine.FindStringSubmatch(line); m != nil {
			if text := strings.TrimSpace(m[2]); text != "" {
				result.Risks = append(result.Risks, RiskEntry{
					Text:     text,
					Severity: Severity(m[1]),
				})
			}
		}
	}

	if result.Title == "" {
		result.Title = fallbackTitle(originalText, filename)
	}

	SortBySeverity(result.Risks)
	return result
}

// SortBySeverity orders entries by severity rank, keeping the original
// relative order of entries with equal rank.
func SortBySeverity(risks []RiskEntry) {
	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Severity.Rank() < risks[j].Severity.Rank()
	})
}

// fallbackTitle scans the original document for the first line whose trimmed
// length is strictly between 5 and 100 characters, then falls back to the
// filename stem.
func fallbackTitle(originalText, filename string) string {
	for _, line := range strings.Split(originalText, "\n") {
		line = strings.TrimSpace(line)
		if n := utf8.RuneCountInString(line); n > 5 && n < 100 {
			return line
		}
	}
	if filename != "" {
		stem := strings.TrimSuffix(filename, filepath.Ext(filename))
		return capitalize(stem) + " " + FallbackSummary
	}
	return ""
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
