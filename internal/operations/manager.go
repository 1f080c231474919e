package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"sleepcli/internal/infrastructure"
)

// Result describes one pipeline run.
type Result struct {
	OperationID string
	Stages      []StageResult
	Duration    time.Duration
}

// Manager executes registered stages sequentially. Each run gets a uuid
// operation ID that doubles as the logging trace ID, an operation span,
// and one child span per stage. A failed stage stops the run; stages
// after it are reported as skipped.
type Manager struct {
	logger *slog.Logger
	tracer trace.Tracer
	stages []Stage
}

// NewManager creates a pipeline manager. logger may be nil.
func NewManager(logger *slog.Logger, tracer trace.Tracer) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{logger: logger, tracer: tracer}
}

// Register appends a stage to the run order.
func (m *Manager) Register(stage Stage) {
	m.stages = append(m.stages, stage)
}

// Run executes all registered stages in order against a shared state.
// Cancellation is honored between stages and inside any stage that
// checks its context.
func (m *Manager) Run(ctx context.Context, state *State) (*Result, error) {
	opID := uuid.New().String()
	ctx = infrastructure.WithTraceID(ctx, opID)

	result := &Result{OperationID: opID}
	started := time.Now()

	var span trace.Span
	if m.tracer != nil {
		ctx, span = m.tracer.Start(ctx, "operation.run",
			trace.WithAttributes(attribute.String("operation.id", opID)))
		defer span.End()
	}

	m.logger.InfoContext(ctx, "operation started",
		slog.String("operation_id", opID),
		slog.Int("stages", len(m.stages)))

	var runErr error
	for _, stage := range m.stages {
		if runErr != nil || ctx.Err() != nil {
			result.Stages = append(result.Stages, StageResult{
				ID:     stage.ID(),
				Name:   stage.Name(),
				Status: StageStatusSkipped,
			})
			continue
		}

		result.Stages = append(result.Stages, m.runStage(ctx, stage, state))
		last := result.Stages[len(result.Stages)-1]
		if last.Err != nil {
			runErr = fmt.Errorf("stage %s failed: %w", stage.ID(), last.Err)
		}
	}

	if runErr == nil {
		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("operation canceled: %w", err)
		}
	}

	result.Duration = time.Since(started)

	if runErr != nil {
		if span != nil {
			span.RecordError(runErr)
			span.SetStatus(codes.Error, runErr.Error())
		}
		m.logger.ErrorContext(ctx, "operation failed",
			slog.String("operation_id", opID),
			slog.Duration("duration", result.Duration),
			slog.String("error", runErr.Error()))
		return result, runErr
	}

	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
	m.logger.InfoContext(ctx, "operation completed",
		slog.String("operation_id", opID),
		slog.Duration("duration", result.Duration))
	return result, nil
}

func (m *Manager) runStage(ctx context.Context, stage Stage, state *State) StageResult {
	var span trace.Span
	if m.tracer != nil {
		ctx, span = m.tracer.Start(ctx, "stage."+stage.ID(),
			trace.WithAttributes(attribute.String("stage.id", stage.ID())))
		defer span.End()
	}

	m.logger.InfoContext(ctx, "stage started",
		slog.String("stage", stage.ID()))

	started := time.Now()
	err := stage.Run(ctx, state)
	duration := time.Since(started)

	result := StageResult{
		ID:       stage.ID(),
		Name:     stage.Name(),
		Status:   StageStatusCompleted,
		Duration: duration,
		Err:      err,
	}

	if err != nil {
		result.Status = StageStatusFailed
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		m.logger.ErrorContext(ctx, "stage failed",
			slog.String("stage", stage.ID()),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return result
	}

	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
	m.logger.InfoContext(ctx, "stage completed",
		slog.String("stage", stage.ID()),
		slog.Duration("duration", duration))
	return result
}
