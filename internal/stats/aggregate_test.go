package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleepcli/pkg/contracts/domain"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestAggregate(t *testing.T) {
	window := domain.WindowRange{
		Start: day(2026, 1, 1),
		End:   day(2026, 6, 30),
	}

	t.Run("single record with episodes", func(t *testing.T) {
		rec := domain.SleepRecord{
			Name:               "Ann",
			Start:              time.Date(2026, 3, 5, 22, 0, 0, 0, time.UTC),
			DurationHours:      8,
			InterruptionCount:  floatPtr(2),
			InterruptionStarts: []int{60, 190},
			InterruptionEnds:   []int{80, 210},
		}

		stats := Aggregate(window, []domain.SleepRecord{rec})

		require.NotNil(t, stats.AvgDurationHours)
		assert.InDelta(t, 8.0, *stats.AvgDurationHours, 1e-9)
		require.NotNil(t, stats.AvgInterruptionCount)
		assert.InDelta(t, 2.0, *stats.AvgInterruptionCount, 1e-9)
		require.NotNil(t, stats.AvgInterruptionLengthMinutes)
		assert.InDelta(t, 20.0, *stats.AvgInterruptionLengthMinutes, 1e-9)

		require.NotNil(t, stats.AvgStartMinute)
		assert.Equal(t, 1320, *stats.AvgStartMinute)
		require.NotNil(t, stats.AvgEndMinute)
		assert.Equal(t, 360, *stats.AvgEndMinute)

		require.NotNil(t, stats.InterruptionStartMean)
		assert.Equal(t, 125, *stats.InterruptionStartMean)
		require.NotNil(t, stats.InterruptionEndMean)
		assert.Equal(t, 145, *stats.InterruptionEndMean)
	})

	t.Run("end minute derives across midnight", func(t *testing.T) {
		rec := domain.SleepRecord{
			Name:          "Ann",
			Start:         time.Date(2026, 3, 5, 23, 0, 0, 0, time.UTC),
			DurationHours: 8,
		}

		stats := Aggregate(window, []domain.SleepRecord{rec})
		require.NotNil(t, stats.AvgEndMinute)
		assert.Equal(t, 420, *stats.AvgEndMinute)
	})

	t.Run("records outside the window do not contribute", func(t *testing.T) {
		stats := Aggregate(window, []domain.SleepRecord{
			{Name: "Ann", Start: time.Date(2026, 9, 1, 22, 0, 0, 0, time.UTC), DurationHours: 8},
		})
		assert.Nil(t, stats.AvgDurationHours)
		assert.Nil(t, stats.AvgStartMinute)
		assert.Nil(t, stats.AvgEndMinute)
	})

	t.Run("episode count substitutes for a missing explicit count", func(t *testing.T) {
		rec := domain.SleepRecord{
			Name:               "Ann",
			Start:              time.Date(2026, 3, 5, 22, 0, 0, 0, time.UTC),
			DurationHours:      8,
			InterruptionStarts: []int{60, 190, 400},
			InterruptionEnds:   []int{80, 210, 420},
		}

		stats := Aggregate(window, []domain.SleepRecord{rec})
		require.NotNil(t, stats.AvgInterruptionCount)
		assert.InDelta(t, 3.0, *stats.AvgInterruptionCount, 1e-9)
	})

	t.Run("precomputed means stand in when no episodes exist", func(t *testing.T) {
		rec := domain.SleepRecord{
			Name:                  "Ann",
			Start:                 time.Date(2026, 3, 5, 22, 0, 0, 0, time.UTC),
			DurationHours:         8,
			InterruptionStartMean: intPtr(90),
			InterruptionEndMean:   intPtr(110),
		}

		stats := Aggregate(window, []domain.SleepRecord{rec})
		assert.Nil(t, stats.AvgInterruptionLengthMinutes)
		require.NotNil(t, stats.InterruptionStartMean)
		assert.Equal(t, 90, *stats.InterruptionStartMean)
		require.NotNil(t, stats.InterruptionEndMean)
		assert.Equal(t, 110, *stats.InterruptionEndMean)
	})

	t.Run("episode samples beat precomputed means", func(t *testing.T) {
		recs := []domain.SleepRecord{
			{
				Name:                  "Ann",
				Start:                 time.Date(2026, 3, 5, 22, 0, 0, 0, time.UTC),
				DurationHours:         8,
				InterruptionStartMean: intPtr(500),
			},
			{
				Name:               "Ann",
				Start:              time.Date(2026, 3, 6, 22, 0, 0, 0, time.UTC),
				DurationHours:      8,
				InterruptionStarts: []int{100},
				InterruptionEnds:   []int{120},
			},
		}

		stats := Aggregate(window, recs)
		require.NotNil(t, stats.InterruptionStartMean)
		assert.Equal(t, 100, *stats.InterruptionStartMean)
	})

	t.Run("no records at all", func(t *testing.T) {
		stats := Aggregate(window, nil)
		assert.Equal(t, domain.WindowStats{}, stats)
	})
}

func TestSummarize(t *testing.T) {
	records := []domain.SleepRecord{
		{Name: "Ann", Start: time.Date(2026, 1, 1, 22, 0, 0, 0, time.UTC), DurationHours: 6},
		{Name: "Ann", Start: time.Date(2026, 8, 28, 22, 0, 0, 0, time.UTC), DurationHours: 8},
	}

	summaries := Summarize(records)
	require.Len(t, summaries, 2)

	// Most recent window first, each record lands in exactly one window.
	assert.Equal(t, day(2026, 8, 28), summaries[0].Range.End)
	require.Len(t, summaries[0].Records, 1)
	assert.InDelta(t, 8.0, *summaries[0].Stats.AvgDurationHours, 1e-9)

	assert.Equal(t, day(2026, 1, 1), summaries[1].Range.Start)
	require.Len(t, summaries[1].Records, 1)
	assert.InDelta(t, 6.0, *summaries[1].Stats.AvgDurationHours, 1e-9)
}

func TestGroupByName(t *testing.T) {
	records := []domain.SleepRecord{
		{Name: "bob", Start: day(2026, 3, 5)},
		{Name: "Ann", Start: day(2026, 3, 5)},
		{Name: "Ann", Start: day(2026, 3, 6)},
	}

	groups := GroupByName(records)
	require.Len(t, groups, 2)
	assert.Len(t, groups["Ann"], 2)
	assert.True(t, groups["Ann"][0].Start.Before(groups["Ann"][1].Start))

	assert.Equal(t, []string{"Ann", "bob"}, SortedNames(groups))
}
