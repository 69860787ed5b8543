package config

import (
	"os"
	"path/filepath"
)

// Paths resolves the application's output locations. All relative paths are
// anchored at the working directory the run was started from; a one-shot
// report generator writes next to where it was invoked.
type Paths struct {
	ReportsDir string
	LogsDir    string
}

// NewPaths builds resolved paths from configuration.
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{
		ReportsDir: cfg.ReportsDir,
		LogsDir:    cfg.LogsDir,
	}
}

// GetReportPath returns the full path for a report file
func (p *Paths) GetReportPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(p.LogsDir, filename)
}

// EnsureDirectories creates the output directories if they do not exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
