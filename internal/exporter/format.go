package exporter

import (
	"fmt"
	"strings"
	"time"

	"sleepcli/pkg/contracts/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatOptFloat renders a missing value as the empty cell.
func formatOptFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

// formatClock renders a clock-of-day minute value as HH:MM.
func formatClock(minute int) string {
	minute = ((minute % domain.MinutesPerDay) + domain.MinutesPerDay) % domain.MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// formatOptClock renders a missing clock value as the empty cell.
func formatOptClock(minute *int) string {
	if minute == nil {
		return ""
	}
	return formatClock(*minute)
}

// formatTimestamp renders a record timestamp for CSV output.
func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// formatOptTimestamp renders a missing timestamp as the empty cell.
func formatOptTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTimestamp(*t)
}

// formatClockList joins clock-of-day minutes as a semicolon separated
// HH:MM list inside a single cell.
func formatClockList(minutes []int) string {
	if len(minutes) == 0 {
		return ""
	}
	parts := make([]string, len(minutes))
	for i, m := range minutes {
		parts[i] = formatClock(m)
	}
	return strings.Join(parts, ";")
}

// formatDate renders a window boundary as a calendar date.
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
