package exporter

import (
	"fmt"

	"sleepcli/pkg/contracts/domain"
)

var recordHeaders = []string{
	"Name",
	"Start",
	"End",
	"DurationHours",
	"InterruptionCount",
	"InterruptionStarts",
	"InterruptionEnds",
}

// RecordsExporter writes the normalized record set to CSV.
type RecordsExporter struct {
	writer *CSVWriter
}

// NewRecordsExporter creates a records exporter rooted at baseDir.
func NewRecordsExporter(baseDir string) *RecordsExporter {
	return &RecordsExporter{writer: NewCSVWriter(baseDir)}
}

// ExportRecords streams the record set to filePath. Records are written
// in the order given; callers pass the engine output, which is already
// sorted by name then start time.
func (e *RecordsExporter) ExportRecords(records []domain.SleepRecord, filePath string) error {
	stream, err := e.writer.CreateStreamWriter(filePath, recordHeaders)
	if err != nil {
		return fmt.Errorf("failed to create records stream: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.Name,
			formatTimestamp(rec.Start),
			formatOptTimestamp(rec.End),
			formatFloat(rec.DurationHours),
			formatOptFloat(rec.InterruptionCount),
			formatClockList(rec.InterruptionStarts),
			formatClockList(rec.InterruptionEnds),
		}
		if err := stream.WriteRow(row); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write record row: %w", err)
		}
	}

	return stream.Close()
}
