package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReportDate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *string
	}{
		{
			name:     "labeled report date",
			text:     "Report Date: 02-01-2025",
			expected: strPtr("2025-01-02T00:00:00"),
		},
		{
			name:     "labeled date with slashes",
			text:     "Date: 02/01/2025",
			expected: strPtr("2025-01-02T00:00:00"),
		},
		{
			name:     "two digit year",
			text:     "Date: 15/06/24",
			expected: strPtr("2024-06-15T00:00:00"),
		},
		{
			name:     "bare date fallback",
			text:     "Collected on 05-03-2024 at the clinic",
			expected: strPtr("2024-03-05T00:00:00"),
		},
		{
			name:     "labeled date preferred over earlier bare date",
			text:     "Admitted 01-01-2020\nReport Date: 10-02-2025",
			expected: strPtr("2025-02-10T00:00:00"),
		},
		{
			name:     "matched but unparseable returned as-is",
			text:     "Date: 02-13-2025",
			expected: strPtr("02-13-2025"),
		},
		{
			name:     "no date",
			text:     "LAB REPORT with no dates at all",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractReportDate(strings.ToUpper(tt.text))
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func strPtr(s string) *string {
	return &s
}
