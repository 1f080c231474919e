package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// exportExtensions are the input formats the loader understands.
var exportExtensions = map[string]bool{
	".csv":  true,
	".tsv":  true,
	".txt":  true,
	".xlsx": true,
	".xlsm": true,
}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindExports finds all export files in the specified directory,
// sorted newest first.
func (d *Discovery) FindExports(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !exportExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})

	return files, nil
}

// FindByPattern finds export files whose names match a glob pattern,
// e.g. "sleep_export_*.csv".
func (d *Discovery) FindByPattern(dir, pattern string) ([]FileInfo, error) {
	all, err := d.FindExports(dir)
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	for _, f := range all {
		ok, err := filepath.Match(pattern, f.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if ok {
			files = append(files, f)
		}
	}
	return files, nil
}

// Newest returns the most recently modified export in dir, or an error
// when none exist.
func (d *Discovery) Newest(dir string) (FileInfo, error) {
	files, err := d.FindExports(dir)
	if err != nil {
		return FileInfo{}, err
	}
	if len(files) == 0 {
		return FileInfo{}, fmt.Errorf("no export files in %s", d.resolve(dir))
	}
	return files[0], nil
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
