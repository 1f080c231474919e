// Package contracts carries the versioned contracts shared with
// downstream consumers of the engine output.
package contracts

import (
	"fmt"
	"runtime"
)

const (
	// Version is the current version of the application
	Version = "0.3.0"

	// DataFormatVersion is the version of the exported report format
	DataFormatVersion = "v1"
)

var (
	// BuildTime is set during build using ldflags
	BuildTime = "unknown"

	// GitCommit is set during build using ldflags
	GitCommit = "unknown"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	Version    string `json:"version"`
	BuildTime  string `json:"build_time"`
	GitCommit  string `json:"git_commit"`
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	DataFormat string `json:"data_format"`
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:    Version,
		BuildTime:  BuildTime,
		GitCommit:  GitCommit,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		DataFormat: DataFormatVersion,
	}
}

// GetVersionString returns a formatted version string
func GetVersionString() string {
	return fmt.Sprintf("SleepPulse Processor v%s", Version)
}

// GetFullVersionString returns a detailed version string
func GetFullVersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf(
		"%s (built: %s, commit: %s, go: %s, os: %s)",
		GetVersionString(),
		info.BuildTime,
		info.GitCommit,
		info.GoVersion,
		info.OS,
	)
}
