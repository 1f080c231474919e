package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleepcli/pkg/contracts/domain"
)

func TestCorrectFutureDates(t *testing.T) {
	asOf := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	t.Run("one year future rolls back exactly one year", func(t *testing.T) {
		rec := domain.SleepRecord{
			Name:          "Ann",
			Start:         time.Date(2027, 8, 28, 6, 30, 0, 0, time.UTC),
			DurationHours: 8,
		}

		out, corrected := CorrectFutureDates([]domain.SleepRecord{rec}, asOf)
		require.Len(t, out, 1)
		assert.Equal(t, 1, corrected)
		assert.Equal(t, time.Date(2026, 8, 28, 6, 30, 0, 0, time.UTC), out[0].Start)
	})

	t.Run("three years future rolls back three times", func(t *testing.T) {
		rec := domain.SleepRecord{
			Start:         time.Date(2029, 3, 5, 22, 0, 0, 0, time.UTC),
			DurationHours: 8,
		}

		out, corrected := CorrectFutureDates([]domain.SleepRecord{rec}, asOf)
		assert.Equal(t, 1, corrected)
		assert.Equal(t, time.Date(2026, 3, 5, 22, 0, 0, 0, time.UTC), out[0].Start)
	})

	t.Run("today and past are untouched", func(t *testing.T) {
		recs := []domain.SleepRecord{
			{Start: time.Date(2026, 8, 28, 23, 59, 0, 0, time.UTC)},
			{Start: time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)},
		}

		out, corrected := CorrectFutureDates(recs, asOf)
		assert.Equal(t, 0, corrected)
		assert.Equal(t, recs[0].Start, out[0].Start)
		assert.Equal(t, recs[1].Start, out[1].Start)
	})

	t.Run("february 29 clamps to february 28", func(t *testing.T) {
		rec := domain.SleepRecord{
			Start: time.Date(2028, 2, 29, 22, 0, 0, 0, time.UTC),
		}

		out, corrected := CorrectFutureDates([]domain.SleepRecord{rec}, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 1, corrected)
		assert.Equal(t, time.Date(2027, 2, 28, 22, 0, 0, 0, time.UTC), out[0].Start)
	})

	t.Run("end shifts with start and keeps the overnight relationship", func(t *testing.T) {
		end := time.Date(2028, 2, 29, 6, 0, 0, 0, time.UTC)
		rec := domain.SleepRecord{
			Start: time.Date(2028, 2, 28, 23, 30, 0, 0, time.UTC),
			End:   &end,
		}

		out, corrected := CorrectFutureDates([]domain.SleepRecord{rec}, time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 1, corrected)
		assert.Equal(t, time.Date(2027, 2, 28, 23, 30, 0, 0, time.UTC), out[0].Start)
		// The shifted end (Feb 28, clamped) would precede the start, so
		// it advances one day.
		require.NotNil(t, out[0].End)
		assert.Equal(t, time.Date(2027, 3, 1, 6, 0, 0, 0, time.UTC), *out[0].End)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		orig := time.Date(2027, 8, 28, 6, 30, 0, 0, time.UTC)
		recs := []domain.SleepRecord{{Start: orig}}

		_, _ = CorrectFutureDates(recs, asOf)
		assert.Equal(t, orig, recs[0].Start)
	})
}

func TestAddYears(t *testing.T) {
	assert.Equal(t,
		time.Date(2023, 2, 28, 6, 0, 0, 0, time.UTC),
		addYears(time.Date(2024, 2, 29, 6, 0, 0, 0, time.UTC), -1))
	assert.Equal(t,
		time.Date(2020, 2, 29, 6, 0, 0, 0, time.UTC),
		addYears(time.Date(2024, 2, 29, 6, 0, 0, 0, time.UTC), -4))
	assert.Equal(t,
		time.Date(2025, 7, 1, 12, 30, 0, 0, time.UTC),
		addYears(time.Date(2026, 7, 1, 12, 30, 0, 0, time.UTC), -1))
}
