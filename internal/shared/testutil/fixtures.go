// Package testutil provides test helpers shared across packages: a
// buffered slog handler for log assertions and fixtures for building
// sleep export notes and records.
package testutil

import (
	"fmt"
	"time"

	"sleepcli/pkg/contracts/domain"
)

// MultiLineNote builds a raw progress note in the common multi-line
// shape, with a main interval and optional interruption episode lines.
func MultiLineNote(date string, episodes int) string {
	note := "Date: " + date + "\n" +
		"Start time (x) PM 10:00\n" +
		"End time (x) AM 6:00\n"
	if episodes > 0 {
		note += fmt.Sprintf("INTERRUPTIONS TOTAL #: %d\n", episodes)
		for i := 0; i < episodes; i++ {
			note += fmt.Sprintf("Start time (x) AM %d:00\n", i+1)
			note += fmt.Sprintf("End time (x) AM %d:20\n", i+1)
		}
	}
	return note
}

// SingleLineNote builds a raw progress note collapsed onto one line,
// as some source systems export it.
func SingleLineNote(date string) string {
	return "Date: " + date +
		" Start time (x) PM 10:00 End time (x) AM 6:00 INTERRUPTIONS TOTAL #: 2"
}

// Record builds a normalized sleep record with an eight hour overnight
// interval starting at the given time.
func Record(name string, start time.Time) domain.SleepRecord {
	end := start.Add(8 * time.Hour)
	return domain.SleepRecord{
		Name:          name,
		Start:         start,
		End:           &end,
		DurationHours: 8,
	}
}
