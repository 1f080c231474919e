package exporter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleepcli/pkg/contracts/domain"
)

func TestExportSummaries(t *testing.T) {
	dir := t.TempDir()

	avgDur := 8.0
	avgCount := 2.0
	avgLen := 20.0
	startMin := 1320
	endMin := 360

	summaries := map[string][]domain.WindowSummary{
		"Ann": {
			{
				Range: domain.WindowRange{
					Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
					End:   time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
				},
				Stats: domain.WindowStats{
					AvgDurationHours:             &avgDur,
					AvgInterruptionCount:         &avgCount,
					AvgInterruptionLengthMinutes: &avgLen,
					AvgStartMinute:               &startMin,
					AvgEndMinute:                 &endMin,
				},
				Records: make([]domain.SleepRecord, 3),
			},
		},
		"Bob": {
			{
				Range: domain.WindowRange{
					Start: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
					End:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
				},
				// No samples: every statistic renders as an empty cell.
				Stats: domain.WindowStats{},
			},
		},
	}

	err := NewSummaryExporter(dir).ExportSummaries(summaries, []string{"Ann", "Bob"}, "summary.csv")
	require.NoError(t, err)

	rows := parseCSV(t, readFile(t, filepath.Join(dir, "summary.csv")))
	require.Len(t, rows, 3)
	assert.Equal(t, summaryHeaders, rows[0])
	assert.Equal(t, []string{
		"Ann", "2026-03-01", "2026-08-28", "3",
		"8.00", "22:00", "06:00", "2.00", "20.00", "", "",
	}, rows[1])
	assert.Equal(t, []string{
		"Bob", "2026-05-01", "2026-05-01", "0",
		"", "", "", "", "", "", "",
	}, rows[2])
}
