package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the directory layout around the processor binary.
type Paths struct {
	BaseDir   string
	InputDir  string
	OutputDir string
	LogsDir   string
}

// NewPaths builds the path set for a base directory, resolving the
// configured input and output directories against it unless they are
// absolute.
func NewPaths(baseDir string, cfg *Config) *Paths {
	return &Paths{
		BaseDir:   baseDir,
		InputDir:  resolveDir(baseDir, cfg.Input.Dir),
		OutputDir: resolveDir(baseDir, cfg.Output.Dir),
		LogsDir:   resolveDir(baseDir, filepath.Dir(cfg.Logging.FilePath)),
	}
}

// EnsureDirectories creates the output and logs directories. The input
// directory is the caller's responsibility; a missing one is reported
// at load time instead.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func resolveDir(baseDir, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(baseDir, dir)
}
