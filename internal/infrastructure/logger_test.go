package infrastructure

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleepcli/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("info"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("unknown"))
}

func TestCreateLogger_FileOutput(t *testing.T) {
	t.Cleanup(ResetLoggerForTesting)

	path := filepath.Join(t.TempDir(), "logs", "processor.log")
	logger, err := createLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
	})
	require.NoError(t, err)

	logger.Info("schema detected", slog.String("schema", "raw"))
	require.NoError(t, CloseLogFile())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"schema detected"`)
	assert.Contains(t, string(data), `"schema":"raw"`)
}

func TestTraceHandler_InjectsTraceID(t *testing.T) {
	t.Cleanup(ResetLoggerForTesting)

	path := filepath.Join(t.TempDir(), "trace.log")
	logger, err := createLogger(config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
	})
	require.NoError(t, err)

	ctx := WithTraceID(context.Background(), "abc-123")
	logger.InfoContext(ctx, "with trace")
	logger.Info("without trace")
	require.NoError(t, CloseLogFile())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"trace_id":"abc-123"`)
	assert.NotContains(t, lines[1], "trace_id")
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = WithTraceID(ctx, "xyz")
	assert.Equal(t, "xyz", GetTraceID(ctx))

	// EnsureTraceID keeps an existing ID and mints one otherwise.
	assert.Equal(t, "xyz", GetTraceID(EnsureTraceID(ctx)))
	minted := GetTraceID(EnsureTraceID(context.Background()))
	assert.NotEmpty(t, minted)
}

func TestWithError(t *testing.T) {
	logger := slog.Default()
	assert.Same(t, logger, WithError(logger, nil))
	assert.NotSame(t, logger, WithError(logger, assert.AnError))
}
