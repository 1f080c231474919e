package stats

import (
	"time"

	"sleepcli/pkg/contracts/domain"
)

// BuildWindows tiles one person's record set into half-year windows,
// walking backwards from the most recent start date. Each window is the
// inclusive range [anchor minus six months plus one day, anchor]; the
// next anchor is the day before the window start, and the final window
// is clamped to the oldest start date.
//
// The windows are pairwise disjoint, their union is exactly
// [oldest date, newest date], and they are returned most-recent first.
func BuildWindows(records []domain.SleepRecord) []domain.WindowRange {
	if len(records) == 0 {
		return nil
	}

	minDate := dateOf(records[0].Start)
	maxDate := minDate
	for _, rec := range records[1:] {
		d := dateOf(rec.Start)
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}

	var windows []domain.WindowRange
	anchor := maxDate
	for !anchor.Before(minDate) {
		start := anchor.AddDate(0, -6, 0).AddDate(0, 0, 1)
		if start.Before(minDate) {
			start = minDate
		}
		windows = append(windows, domain.WindowRange{Start: start, End: anchor})
		anchor = start.AddDate(0, 0, -1)
	}
	return windows
}

// Chronological returns a copy of the windows in oldest-first order.
func Chronological(windows []domain.WindowRange) []domain.WindowRange {
	out := make([]domain.WindowRange, len(windows))
	for i, w := range windows {
		out[len(windows)-1-i] = w
	}
	return out
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
