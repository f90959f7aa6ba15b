package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPeriodsOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		startA, endA, startB, endB string
		overlap                    bool
	}{
		{"disjoint years", "2024-01-01", "2024-12-31", "2025-01-01", "2025-12-31", false},
		{"identical", "2025-01-01", "2025-12-31", "2025-01-01", "2025-12-31", true},
		{"contained", "2025-01-01", "2025-12-31", "2025-03-01", "2025-06-30", true},
		{"partial", "2024-07-01", "2025-06-30", "2025-01-01", "2025-12-31", true},
		{"shared boundary day", "2024-01-01", "2024-12-31", "2024-12-31", "2025-12-30", true},
		{"gap of one day", "2024-01-01", "2024-12-30", "2025-01-01", "2025-12-31", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := PeriodsOverlap(day(c.startA), day(c.endA), day(c.startB), day(c.endB))
			assert.Equal(t, c.overlap, got)
			// Overlap is symmetric.
			assert.Equal(t, c.overlap, PeriodsOverlap(day(c.startB), day(c.endB), day(c.startA), day(c.endA)))
		})
	}
}

func TestFiscalPeriodContainsDate(t *testing.T) {
	period := FiscalPeriod{StartDate: day("2025-01-01"), EndDate: day("2025-12-31")}

	assert.True(t, period.ContainsDate(day("2025-01-01")))
	assert.True(t, period.ContainsDate(day("2025-12-31")))
	assert.True(t, period.ContainsDate(day("2025-06-15")))
	assert.False(t, period.ContainsDate(day("2024-12-31")))
	assert.False(t, period.ContainsDate(day("2026-01-01")))

	// Time of day never matters.
	assert.True(t, period.ContainsDate(day("2025-12-31").Add(23*time.Hour)))
}
