// Package workspace manages the temporary directory a remote vault is
// cloned into before exporting.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/noteport/internal/logfields"
)

// Manager creates and cleans up one ephemeral workspace directory.
type Manager struct {
	baseDir string
	dir     string
}

// NewManager returns a manager creating timestamped directories under
// baseDir (the system temp directory when empty).
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// Create makes a fresh timestamped workspace directory.
func (m *Manager) Create() error {
	timestamp := time.Now().Format("20060102-150405")
	dir := filepath.Join(m.baseDir, fmt.Sprintf("noteport-%s", timestamp))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create workspace directory: %w", err)
	}
	m.dir = dir
	slog.Debug("Created workspace", logfields.Path(dir))
	return nil
}

// Path returns the workspace directory.
func (m *Manager) Path() string { return m.dir }

// Cleanup removes the workspace directory and everything in it.
func (m *Manager) Cleanup() {
	if m.dir == "" {
		return
	}
	if err := os.RemoveAll(m.dir); err != nil {
		slog.Warn("Failed to clean up workspace", logfields.Path(m.dir), logfields.Error(err))
		return
	}
	slog.Debug("Cleaned up workspace", logfields.Path(m.dir))
}
