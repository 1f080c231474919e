package operations

import (
	"context"
	"sync"
	"time"

	"sleepcli/pkg/contracts/domain"
)

// Stage is a single step of the processing pipeline.
type Stage interface {
	// ID returns the unique identifier for this stage
	ID() string

	// Name returns the human-readable name for this stage
	Name() string

	// Run executes the stage against the shared pipeline state
	Run(ctx context.Context, state *State) error
}

// StageStatus represents the current status of a stage
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
	StageStatusSkipped   StageStatus = "skipped"
)

// StageResult captures the outcome of one stage run.
type StageResult struct {
	ID       string
	Name     string
	Status   StageStatus
	Duration time.Duration
	Err      error
}

// State is the data handed from stage to stage. Stages run
// sequentially; the mutex guards concurrent readers such as status
// endpoints.
type State struct {
	mu sync.RWMutex

	records     []domain.SleepRecord
	summaries   map[string][]domain.WindowSummary
	names       []string
	filesLoaded int
}

// NewState creates an empty pipeline state.
func NewState() *State {
	return &State{summaries: make(map[string][]domain.WindowSummary)}
}

// SetRecords stores the merged, sorted record set.
func (s *State) SetRecords(records []domain.SleepRecord, filesLoaded int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.filesLoaded = filesLoaded
}

// Records returns the current record set.
func (s *State) Records() []domain.SleepRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// FilesLoaded returns how many input files contributed records.
func (s *State) FilesLoaded() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filesLoaded
}

// SetSummaries stores the per-person window summaries together with the
// deterministic person ordering.
func (s *State) SetSummaries(summaries map[string][]domain.WindowSummary, names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = summaries
	s.names = names
}

// Summaries returns the per-person window summaries.
func (s *State) Summaries() map[string][]domain.WindowSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summaries
}

// Names returns the person names in output order.
func (s *State) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names
}
