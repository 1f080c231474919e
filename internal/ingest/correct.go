package ingest

import (
	"time"

	"sleepcli/pkg/contracts/domain"
)

// CorrectFutureDates rolls every record whose start date lies strictly
// after asOf back by whole years until it does not, preserving month,
// day, and clock time. The end timestamp, when present, is shifted by
// the same number of years; if that breaks the overnight relationship
// the end is advanced one day. Source notes frequently omit explicit
// years, so a parsed date can land in the current year even when the
// observation was made earlier; rolling back assumes an annual
// reporting cycle.
//
// The input is not mutated. The second return value is the number of
// records that were corrected.
func CorrectFutureDates(records []domain.SleepRecord, asOf time.Time) ([]domain.SleepRecord, int) {
	today := dateOnly(asOf)

	out := make([]domain.SleepRecord, len(records))
	corrected := 0
	for i, rec := range records {
		out[i] = rec

		years := 0
		start := rec.Start
		for dateOnly(start).After(today) {
			start = addYears(start, -1)
			years++
		}
		if years == 0 {
			continue
		}

		out[i].Start = start
		if rec.End != nil {
			end := addYears(*rec.End, -years)
			if end.Before(start) {
				end = end.AddDate(0, 0, 1)
			}
			out[i].End = &end
		}
		corrected++
	}
	return out, corrected
}

// addYears shifts t by whole years without month rollover: a February 29
// landing on a non-leap year is clamped to February 28 (AddDate would
// normalize it to March 1).
func addYears(t time.Time, years int) time.Time {
	year, month, day := t.Date()
	year += years
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
