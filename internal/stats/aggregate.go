package stats

import (
	"math"
	"sort"
	"strings"

	"sleepcli/pkg/contracts/domain"
)

// Aggregate computes the statistics for the records whose start date
// falls inside the window. Every output field is nil when no sample
// contributes to it.
//
// The average end minute is not averaged independently: it is derived
// from the circular mean start and the average duration, so start, end
// and duration stay mutually consistent even across midnight.
func Aggregate(window domain.WindowRange, records []domain.SleepRecord) domain.WindowStats {
	var (
		durations     []float64
		counts        []float64
		episodeLens   []float64
		startMinutes  []int
		epStartMins   []int
		epEndMins     []int
		fallbackStart *int
		fallbackEnd   *int
	)

	for _, rec := range records {
		if !window.Contains(rec.Start) {
			continue
		}

		durations = append(durations, rec.DurationHours)
		startMinutes = append(startMinutes, rec.StartMinuteOfDay())

		switch {
		case rec.InterruptionCount != nil:
			counts = append(counts, *rec.InterruptionCount)
		case rec.EpisodeCount() > 0:
			counts = append(counts, float64(rec.EpisodeCount()))
		}

		for i := 0; i < rec.EpisodeCount(); i++ {
			start := rec.InterruptionStarts[i]
			end := rec.InterruptionEnds[i]
			epStartMins = append(epStartMins, start)
			epEndMins = append(epEndMins, end)
			episodeLens = append(episodeLens, float64((end-start+domain.MinutesPerDay)%domain.MinutesPerDay))
		}

		if fallbackStart == nil && rec.InterruptionStartMean != nil {
			fallbackStart = rec.InterruptionStartMean
		}
		if fallbackEnd == nil && rec.InterruptionEndMean != nil {
			fallbackEnd = rec.InterruptionEndMean
		}
	}

	var stats domain.WindowStats

	if mean, ok := scalarMean(durations); ok {
		stats.AvgDurationHours = &mean
	}
	if mean, ok := scalarMean(counts); ok {
		stats.AvgInterruptionCount = &mean
	}
	if mean, ok := scalarMean(episodeLens); ok {
		stats.AvgInterruptionLengthMinutes = &mean
	}

	if circ, ok := CircularMeanMinutes(startMinutes); ok {
		stats.AvgStartMinute = &circ
		if stats.AvgDurationHours != nil {
			end := (circ + int(math.Round(*stats.AvgDurationHours*60))) % domain.MinutesPerDay
			stats.AvgEndMinute = &end
		}
	}

	if circ, ok := CircularMeanMinutes(epStartMins); ok {
		stats.InterruptionStartMean = &circ
	} else {
		stats.InterruptionStartMean = fallbackStart
	}
	if circ, ok := CircularMeanMinutes(epEndMins); ok {
		stats.InterruptionEndMean = &circ
	} else {
		stats.InterruptionEndMean = fallbackEnd
	}

	return stats
}

// Summarize windows one person's records and aggregates each window.
// Records must all belong to the same person; the ordering of the
// returned summaries is most-recent window first, matching BuildWindows.
func Summarize(records []domain.SleepRecord) []domain.WindowSummary {
	windows := BuildWindows(records)

	summaries := make([]domain.WindowSummary, 0, len(windows))
	for _, w := range windows {
		var member []domain.SleepRecord
		for _, rec := range records {
			if w.Contains(rec.Start) {
				member = append(member, rec)
			}
		}
		summaries = append(summaries, domain.WindowSummary{
			Range:   w,
			Stats:   Aggregate(w, member),
			Records: member,
		})
	}
	return summaries
}

// GroupByName splits a mixed record set per person, preserving the
// relative order of each person's records.
func GroupByName(records []domain.SleepRecord) map[string][]domain.SleepRecord {
	groups := make(map[string][]domain.SleepRecord)
	for _, rec := range records {
		groups[rec.Name] = append(groups[rec.Name], rec)
	}
	return groups
}

// SortedNames returns the group keys in case-insensitive order, for
// deterministic iteration over GroupByName output.
func SortedNames(groups map[string][]domain.SleepRecord) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}
