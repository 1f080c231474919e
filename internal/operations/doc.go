// Package operations runs the processing pipeline as a sequence of
// stages (load, summarize, export) sharing one state. Every run gets a
// uuid operation ID used as both the slog trace ID and the root span,
// with a child span per stage. Runs are in-memory and sequential;
// cancellation is honored between stages.
package operations
