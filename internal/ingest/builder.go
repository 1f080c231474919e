package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"sleepcli/pkg/contracts/domain"
)

// timestampLayouts are tried in order when parsing preprocessed
// start/end columns. Exports disagree on the format, so the list is
// permissive.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"1/2/2006",
}

// BuildFromNote assembles a record from one raw-schema row: the parsed
// note, its extracted interruption episodes, and the caller's default
// year. It returns false when the row cannot yield a valid record: no
// resolvable date, no resolvable start clock time, or a non-positive or
// undeterminable duration.
func BuildFromNote(name string, note *ParsedNote, eps Episodes, defaultYear int) (domain.SleepRecord, bool) {
	if note == nil {
		return domain.SleepRecord{}, false
	}

	date, ok := NormalizeDate(note.DateExpr, defaultYear)
	if !ok {
		return domain.SleepRecord{}, false
	}

	startMin, ok := ResolveClockMinutes(note.StartLine)
	if !ok {
		return domain.SleepRecord{}, false
	}
	start := date.Add(time.Duration(startMin) * time.Minute)

	var end *time.Time
	if endMin, ok := ResolveClockMinutes(note.EndLine); ok {
		e := date.Add(time.Duration(endMin) * time.Minute)
		if e.Before(start) {
			// Overnight sleep: an end clock time earlier than the start
			// belongs to the next calendar day.
			e = e.AddDate(0, 0, 1)
		}
		end = &e
	}

	durationMinutes, ok := durationFromNote(note, start, end)
	if !ok || durationMinutes <= 0 {
		return domain.SleepRecord{}, false
	}

	rec := domain.SleepRecord{
		Name:          normalizeName(name),
		Start:         start,
		End:           end,
		DurationHours: durationMinutes / 60,

		InterruptionStarts:    eps.StartMinutes,
		InterruptionEnds:      eps.EndMinutes,
		InterruptionStartMean: eps.StartMean,
		InterruptionEndMean:   eps.EndMean,
	}
	if note.InterruptionTotal != nil {
		count := float64(*note.InterruptionTotal)
		rec.InterruptionCount = &count
	}
	return rec, true
}

// durationFromNote resolves the interval duration in minutes. Explicit
// Hours/Minutes fields take precedence over the end-start derivation,
// with a missing piece treated as zero.
func durationFromNote(note *ParsedNote, start time.Time, end *time.Time) (float64, bool) {
	if note.Hours != nil || note.Minutes != nil {
		var minutes float64
		if note.Hours != nil {
			minutes += float64(*note.Hours) * 60
		}
		if note.Minutes != nil {
			minutes += float64(*note.Minutes)
		}
		return minutes, true
	}
	if end != nil {
		return end.Sub(start).Minutes(), true
	}
	return 0, false
}

// BuildFromColumns assembles a record from one preprocessed-schema row.
// The duration column is authoritative; it is never recomputed from the
// start/end timestamps even when both are present. A row whose start or
// duration fails to parse is discarded.
func BuildFromColumns(name, startCol, endCol, durationCol, interruptionsCol string) (domain.SleepRecord, bool) {
	start, ok := parseTimestamp(startCol)
	if !ok {
		return domain.SleepRecord{}, false
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(durationCol), 64)
	if err != nil || math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return domain.SleepRecord{}, false
	}

	rec := domain.SleepRecord{
		Name:          normalizeName(name),
		Start:         start,
		DurationHours: duration,
	}

	if end, ok := parseTimestamp(endCol); ok {
		rec.End = &end
	}
	if c, err := strconv.ParseFloat(strings.TrimSpace(interruptionsCol), 64); err == nil && !math.IsNaN(c) && !math.IsInf(c, 0) {
		rec.InterruptionCount = &c
	}

	return rec, true
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.UnknownName
	}
	return name
}
