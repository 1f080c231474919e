package testutil

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// LogRecord represents a captured log record for testing
type LogRecord struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// BufferedSlogHandler captures log records for assertions in tests.
type BufferedSlogHandler struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewBufferedSlogHandler creates a new buffered handler for testing
func NewBufferedSlogHandler() *BufferedSlogHandler {
	return &BufferedSlogHandler{}
}

// Logger returns a logger backed by this handler.
func (h *BufferedSlogHandler) Logger() *slog.Logger {
	return slog.New(h)
}

// Handle implements slog.Handler
func (h *BufferedSlogHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, LogRecord{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// Enabled implements slog.Handler; all levels are captured in tests.
func (h *BufferedSlogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler
func (h *BufferedSlogHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

// WithGroup implements slog.Handler
func (h *BufferedSlogHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Records returns a copy of all captured records.
func (h *BufferedSlogHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Find returns the first record with the given message, if any.
func (h *BufferedSlogHandler) Find(message string) (LogRecord, bool) {
	for _, r := range h.Records() {
		if r.Message == message {
			return r, true
		}
	}
	return LogRecord{}, false
}

// HasMessage reports whether any captured record has the message.
func (h *BufferedSlogHandler) HasMessage(message string) bool {
	_, ok := h.Find(message)
	return ok
}
