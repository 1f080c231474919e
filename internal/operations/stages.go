package operations

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"sleepcli/internal/exporter"
	"sleepcli/internal/files"
	"sleepcli/internal/ingest"
	"sleepcli/internal/stats"
	"sleepcli/pkg/contracts/domain"
)

// loadConcurrency bounds the number of exports parsed at once.
const loadConcurrency = 4

// LoadStage discovers export files and loads them all through the
// ingestion engine, fanning out across files.
type LoadStage struct {
	Loader    *ingest.Loader
	Discovery *files.Discovery
	Dir       string
	Pattern   string
	Logger    *slog.Logger
}

func (s *LoadStage) ID() string   { return "load" }
func (s *LoadStage) Name() string { return "Load exports" }

// Run loads every discovered export concurrently and merges the results
// into one sorted record set. A directory with no exports yields an
// empty record set, not an error; a schema failure in any file fails
// the stage.
func (s *LoadStage) Run(ctx context.Context, state *State) error {
	pattern := s.Pattern
	if pattern == "" {
		pattern = "*"
	}

	found, err := s.Discovery.FindByPattern(s.Dir, pattern)
	if err != nil {
		return err
	}

	s.logger().InfoContext(ctx, "discovered exports",
		slog.String("dir", s.Dir),
		slog.String("pattern", pattern),
		slog.Int("files", len(found)))

	var (
		mu     sync.Mutex
		merged []domain.SleepRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for _, f := range found {
		f := f
		g.Go(func() error {
			records, err := s.Loader.LoadFile(gctx, f.Path)
			if err != nil {
				return err
			}
			mu.Lock()
			merged = append(merged, records...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Per-file output is sorted; the merge is not.
	ingest.SortRecords(merged)
	state.SetRecords(merged, len(found))
	return nil
}

func (s *LoadStage) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// SummarizeStage windows each person's records and computes the
// per-window statistics.
type SummarizeStage struct{}

func (s *SummarizeStage) ID() string   { return "summarize" }
func (s *SummarizeStage) Name() string { return "Summarize windows" }

func (s *SummarizeStage) Run(ctx context.Context, state *State) error {
	groups := stats.GroupByName(state.Records())
	names := stats.SortedNames(groups)

	summaries := make(map[string][]domain.WindowSummary, len(groups))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		summaries[name] = stats.Summarize(groups[name])
	}

	state.SetSummaries(summaries, names)
	return nil
}

// ExportStage writes the record and summary CSV files.
type ExportStage struct {
	OutDir      string
	RecordsFile string
	SummaryFile string
}

func (s *ExportStage) ID() string   { return "export" }
func (s *ExportStage) Name() string { return "Export reports" }

func (s *ExportStage) Run(ctx context.Context, state *State) error {
	if err := exporter.NewRecordsExporter(s.OutDir).ExportRecords(state.Records(), s.RecordsFile); err != nil {
		return err
	}
	return exporter.NewSummaryExporter(s.OutDir).ExportSummaries(state.Summaries(), state.Names(), s.SummaryFile)
}
