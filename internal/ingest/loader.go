package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"sleepcli/internal/errors"
	"sleepcli/pkg/contracts/domain"
)

// delimiterCandidates are tried against the header line during
// delimiter sniffing, in preference order.
var delimiterCandidates = []rune{',', '\t', ';', '|'}

// Config holds loader options.
type Config struct {
	// AsOf is the reference "today" for default years and future-date
	// correction. Zero means time.Now() at the moment of each load.
	AsOf time.Time
}

// Loader turns a delimited export stream into normalized sleep records.
// A Loader is stateless across calls; each Load is independent and
// reentrant.
type Loader struct {
	logger  *slog.Logger
	metrics *Metrics
	cfg     Config
}

// NewLoader creates a loader. logger may be nil (slog.Default is used);
// metrics may be nil (nothing is recorded).
func NewLoader(logger *slog.Logger, metrics *Metrics, cfg Config) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, metrics: metrics, cfg: cfg}
}

// rowSource yields data rows one at a time, returning io.EOF when
// exhausted.
type rowSource func() ([]string, error)

// Load reads a delimited tabular stream with a header row and returns
// the normalized, future-date-corrected record set, sorted by person
// name (case-insensitive) then start time.
//
// The stream is buffered fully exactly once, so non-seekable sources are
// fine. An unrecognizable header is the only fatal condition; malformed
// rows are skipped. A stream with zero data rows yields an empty slice
// and no error.
func (l *Loader) Load(ctx context.Context, r io.Reader) ([]domain.SleepRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewStorageError("read input stream", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.SleepRecord{}, nil
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	// Tolerate stray quotes and uneven field counts: structural noise in
	// the export must never abort a load.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return []domain.SleepRecord{}, nil
	}
	if err != nil {
		return nil, errors.NewParsingError("read header row", err)
	}

	layout, err := DetectLayout(header)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "detected export schema",
		slog.String("schema", string(layout.Kind)),
		slog.String("delimiter", string(reader.Comma)))

	return l.loadRows(ctx, layout, func() ([]string, error) {
		return reader.Read()
	})
}

// LoadFile loads a single export file, dispatching on extension between
// the delimited-text path and the xlsx workbook path.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]domain.SleepRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return l.LoadWorkbook(ctx, path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("open export file %s", path), err)
		}
		defer f.Close()
		return l.Load(ctx, f)
	}
}

// loadRows streams data rows through the per-schema build path, then
// applies future-date correction and ordering to the complete set.
func (l *Loader) loadRows(ctx context.Context, layout Layout, next rowSource) ([]domain.SleepRecord, error) {
	asOf := l.cfg.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}

	records := make([]domain.SleepRecord, 0, 64)
	rows := 0
	for {
		// One cooperative cancellation checkpoint per row. A canceled
		// batch aborts before correction ever sees a truncated set.
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load canceled: %w", err)
		}

		row, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if stderrors.As(err, &parseErr) {
				l.metrics.rowSkipped(ctx, layout.Kind, SkipReasonMalformedRow)
				continue
			}
			return nil, errors.NewParsingError("read data row", err)
		}

		rows++
		l.metrics.rowRead(ctx, layout.Kind)

		if rec, ok := l.buildRow(ctx, layout, row, asOf.Year()); ok {
			records = append(records, rec)
			l.metrics.recordBuilt(ctx, layout.Kind)
		}
	}

	records, corrected := CorrectFutureDates(records, asOf)
	l.metrics.datesCorrected(ctx, corrected)

	SortRecords(records)

	l.logger.InfoContext(ctx, "load complete",
		slog.String("schema", string(layout.Kind)),
		slog.Int("rows", rows),
		slog.Int("records", len(records)),
		slog.Int("future_dates_corrected", corrected))

	return records, nil
}

// buildRow dispatches one data row to the schema-specific builder. Any
// failure is row-local: the row is dropped, counted, and the batch
// continues.
func (l *Loader) buildRow(ctx context.Context, layout Layout, row []string, defaultYear int) (domain.SleepRecord, bool) {
	switch layout.Kind {
	case SchemaRaw:
		if layout.Name >= len(row) || layout.Details >= len(row) {
			l.metrics.rowSkipped(ctx, layout.Kind, SkipReasonShortRow)
			return domain.SleepRecord{}, false
		}

		note := ParseNote(row[layout.Details])
		if note == nil {
			l.metrics.rowSkipped(ctx, layout.Kind, SkipReasonEmptyNote)
			return domain.SleepRecord{}, false
		}

		rec, ok := BuildFromNote(row[layout.Name], note, ExtractEpisodes(note), defaultYear)
		if !ok {
			reason := SkipReasonUnbuildable
			if _, dateOK := NormalizeDate(note.DateExpr, defaultYear); !dateOK {
				reason = SkipReasonBadDate
			}
			l.metrics.rowSkipped(ctx, layout.Kind, reason)
			l.logger.DebugContext(ctx, "dropped raw row",
				slog.String("reason", reason),
				slog.String("name", row[layout.Name]))
			return domain.SleepRecord{}, false
		}
		return rec, true

	case SchemaPreprocessed:
		rec, ok := BuildFromColumns(
			cell(row, layout.Name),
			cell(row, layout.Start),
			cell(row, layout.End),
			cell(row, layout.Duration),
			cell(row, layout.Interruptions),
		)
		if !ok {
			l.metrics.rowSkipped(ctx, layout.Kind, SkipReasonUnbuildable)
			l.logger.DebugContext(ctx, "dropped preprocessed row",
				slog.String("name", cell(row, layout.Name)))
			return domain.SleepRecord{}, false
		}
		return rec, true
	}

	return domain.SleepRecord{}, false
}

// cell returns the column value at idx, or "" when the column is absent
// from the layout or the row is too short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// SortRecords orders records by case-insensitive person name, then start
// timestamp ascending. This is the engine's output ordering contract.
func SortRecords(records []domain.SleepRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ni := strings.ToLower(records[i].Name)
		nj := strings.ToLower(records[j].Name)
		if ni != nj {
			return ni < nj
		}
		return records[i].Start.Before(records[j].Start)
	})
}

// sniffDelimiter picks the delimiter with the most occurrences in the
// header line. Comma wins ties and is the fallback.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	best := ','
	bestCount := 0
	for _, cand := range delimiterCandidates {
		if n := bytes.Count(line, []byte(string(cand))); n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}
