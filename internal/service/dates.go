package service

import (
	"regexp"
	"time"
)

// datePatterns are tried in order. Labeled dates win over the bare numeric
// fallback so "Report Date: 02-01-2025" is preferred to an earlier stray date.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:REPORT\s+DATE|DATE)[:\s]*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
	regexp.MustCompile(`(?:REPORT\s+DATE|DATE)[:\s]*(\d{1,2}\s+(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)[A-Z]*\s+\d{2,4})`),
	regexp.MustCompile(`(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`),
}

// dateLayouts accept day-first numeric dates with two or four digit years.
var dateLayouts = []string{
	"2-1-2006",
	"2/1/2006",
	"2-1-06",
	"2/1/06",
}

// extractReportDate finds a report date in uppercased text and normalizes it
// to ISO timestamp form. A date that matches a pattern but fits no known
// layout is returned as matched. Returns nil when no pattern matches.
func extractReportDate(upper string) *string {
	for _, pattern := range datePatterns {
		m := pattern.FindStringSubmatch(upper)
		if m == nil {
			continue
		}

		raw := m[1]
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				iso := t.Format("2006-01-02T15:04:05")
				return &iso
			}
		}

		return &raw
	}

	return nil
}
