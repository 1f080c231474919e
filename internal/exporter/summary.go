package exporter

import (
	"fmt"
	"strconv"

	"sleepcli/pkg/contracts/domain"
)

var summaryHeaders = []string{
	"Name",
	"WindowStart",
	"WindowEnd",
	"Records",
	"AvgDurationHours",
	"AvgStartTime",
	"AvgEndTime",
	"AvgInterruptionCount",
	"AvgInterruptionLengthMinutes",
	"InterruptionStartMean",
	"InterruptionEndMean",
}

// SummaryExporter writes per-person per-window statistics to CSV.
type SummaryExporter struct {
	writer *CSVWriter
}

// NewSummaryExporter creates a summary exporter rooted at baseDir.
func NewSummaryExporter(baseDir string) *SummaryExporter {
	return &SummaryExporter{writer: NewCSVWriter(baseDir)}
}

// ExportSummaries writes one row per window for each person, in the
// order the summaries map iteration helper provides. Clock statistics
// are rendered as HH:MM; absent statistics are empty cells.
func (e *SummaryExporter) ExportSummaries(summaries map[string][]domain.WindowSummary, names []string, filePath string) error {
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		for _, summary := range summaries[name] {
			rows = append(rows, summaryRow(name, summary))
		}
	}

	if err := e.writer.WriteSimpleCSV(filePath, summaryHeaders, rows); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

func summaryRow(name string, summary domain.WindowSummary) []string {
	return []string{
		name,
		formatDate(summary.Range.Start),
		formatDate(summary.Range.End),
		strconv.Itoa(len(summary.Records)),
		formatOptFloat(summary.Stats.AvgDurationHours),
		formatOptClock(summary.Stats.AvgStartMinute),
		formatOptClock(summary.Stats.AvgEndMinute),
		formatOptFloat(summary.Stats.AvgInterruptionCount),
		formatOptFloat(summary.Stats.AvgInterruptionLengthMinutes),
		formatOptClock(summary.Stats.InterruptionStartMean),
		formatOptClock(summary.Stats.InterruptionEndMean),
	}
}
