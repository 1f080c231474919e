package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// CSVWriter provides CSV export functionality. Relative paths are
// resolved against the configured output directory.
type CSVWriter struct {
	baseDir string
}

// NewCSVWriter creates a new CSV writer rooted at baseDir.
func NewCSVWriter(baseDir string) *CSVWriter {
	return &CSVWriter{baseDir: baseDir}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Rows      [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("row_count", len(options.Rows)))

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Write BOM if requested (helps Excel recognize UTF-8)
	if options.BOMPrefix && !options.Append {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, row := range options.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	return writer.Error()
}

// WriteSimpleCSV writes a simple CSV file with headers and rows
func (w *CSVWriter) WriteSimpleCSV(filePath string, headers []string, rows [][]string) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   headers,
		Rows:      rows,
		BOMPrefix: true,
	})
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	// Write BOM for Excel compatibility
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRow writes a single row to the stream
func (s *StreamWriter) WriteRow(row []string) error {
	return s.writer.Write(row)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// resolvePath resolves a relative path against the output directory.
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.baseDir, filePath)
}
