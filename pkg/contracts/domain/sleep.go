package domain

import (
	"time"
)

// MinutesPerDay is the modulus for clock-of-day minute values.
const MinutesPerDay = 24 * 60

// UnknownName is the placeholder used when a row carries no person name.
const UnknownName = "Unknown"

// SleepRecord is one normalized sleep interval for one person.
// Records are created once during ingestion, corrected for future dates,
// and never mutated afterwards.
type SleepRecord struct {
	Name          string     `json:"name" csv:"Name"`
	Start         time.Time  `json:"start" csv:"Start"`
	End           *time.Time `json:"end,omitempty" csv:"End"`
	DurationHours float64    `json:"duration_hours" csv:"DurationHours"`

	// InterruptionCount is the explicitly stated total, when the note
	// carried one.
	InterruptionCount *float64 `json:"interruption_count,omitempty" csv:"InterruptionCount"`

	// InterruptionStarts/InterruptionEnds are clock-of-day minutes for
	// each detected interruption episode. The lists are aligned by
	// position and consumed pairwise up to the shorter length; trailing
	// unmatched entries are ignored.
	InterruptionStarts []int `json:"interruption_starts,omitempty" csv:"InterruptionStarts"`
	InterruptionEnds   []int `json:"interruption_ends,omitempty" csv:"InterruptionEnds"`

	// InterruptionStartMean/InterruptionEndMean are single fallback
	// values used only when no per-episode lists were extracted.
	InterruptionStartMean *int `json:"interruption_start_mean,omitempty" csv:"InterruptionStartMean"`
	InterruptionEndMean   *int `json:"interruption_end_mean,omitempty" csv:"InterruptionEndMean"`
}

// StartMinuteOfDay returns the record's start as minutes from midnight.
func (r SleepRecord) StartMinuteOfDay() int {
	return r.Start.Hour()*60 + r.Start.Minute()
}

// EpisodeCount returns the number of usable interruption episodes, the
// pairwise minimum of the two lists.
func (r SleepRecord) EpisodeCount() int {
	n := len(r.InterruptionStarts)
	if len(r.InterruptionEnds) < n {
		n = len(r.InterruptionEnds)
	}
	return n
}

// WindowRange is an inclusive calendar date range of at most ~6 months,
// built per person.
type WindowRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the date of t falls inside the range.
func (w WindowRange) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(w.Start) && !d.After(w.End)
}

// WindowStats is the per-window aggregate. Every field is optional and
// nil when no contributing samples exist.
type WindowStats struct {
	AvgDurationHours             *float64 `json:"avg_duration_hours,omitempty"`
	AvgInterruptionLengthMinutes *float64 `json:"avg_interruption_length_minutes,omitempty"`
	AvgInterruptionCount         *float64 `json:"avg_interruption_count,omitempty"`

	// AvgStartMinute is the circular mean of the records' start
	// clock-of-day minutes. AvgEndMinute is derived from it and the
	// average duration rather than independently averaged.
	AvgStartMinute *int `json:"avg_start_minute,omitempty"`
	AvgEndMinute   *int `json:"avg_end_minute,omitempty"`

	InterruptionStartMean *int `json:"interruption_start_mean,omitempty"`
	InterruptionEndMean   *int `json:"interruption_end_mean,omitempty"`
}

// WindowSummary pairs a window with its statistics and the records that
// contributed to them.
type WindowSummary struct {
	Range   WindowRange   `json:"range"`
	Stats   WindowStats   `json:"stats"`
	Records []SleepRecord `json:"records,omitempty"`
}
