package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// GenerateTraceID creates a new unique trace ID using UUID v4
func GenerateTraceID() string {
	return uuid.New().String()
}

// EnsureTraceID ensures the context has a trace ID, generating one if needed
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) == "" {
		return WithTraceID(ctx, GenerateTraceID())
	}
	return ctx
}

// LoggerWithContext creates a logger that includes the trace ID from
// context. This is the preferred way to get a logger inside a run.
func LoggerWithContext(ctx context.Context) *slog.Logger {
	logger := GetLogger()
	if traceID := GetTraceID(ctx); traceID != "" {
		logger = logger.With("trace_id", traceID)
	}
	return logger
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}

// WithError creates a logger with an error field
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With("error", err.Error())
}
