package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	dirPermissions = 0o755

	// RecordingsDirName is the default folder for captured audio under the base path.
	RecordingsDirName = "recordings"
	// ConfigFileName is the YAML config file under the base path.
	ConfigFileName = "config.yaml"
	// LogFileName is the log file under the base path.
	LogFileName = "prompter.log"

	recordingStampLayout = "20060102_150405"
)

// Manager centralizes where prompter data lives on disk and how recordings are named.
type Manager struct {
	basePath      string
	recordingsDir string
}

// NewManager constructs a Manager rooted at the provided directory. If basePath
// is empty, it falls back to ~/.prompter (or another location determined by
// ResolveBasePath).
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{
		basePath:      abs,
		recordingsDir: filepath.Join(abs, RecordingsDirName),
	}, nil
}

// BasePath returns the root directory.
func (m *Manager) BasePath() string {
	return m.basePath
}

// ConfigPath returns the location of the optional config file.
func (m *Manager) ConfigPath() string {
	return filepath.Join(m.basePath, ConfigFileName)
}

// LogPath returns the location of the log file.
func (m *Manager) LogPath() string {
	return filepath.Join(m.basePath, LogFileName)
}

// RecordingsDir returns the directory new recordings are written to.
func (m *Manager) RecordingsDir() string {
	return m.recordingsDir
}

// SetRecordingsDir points recordings somewhere other than <base>/recordings.
// Relative paths are resolved against the base path.
func (m *Manager) SetRecordingsDir(dir string) error {
	if dir == "" {
		return nil
	}
	dir, err := expand(dir)
	if err != nil {
		return err
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(m.basePath, dir)
	}
	m.recordingsDir = filepath.Clean(dir)
	return nil
}

// RecordingPath names the WAV file for a capture of the section at index that
// started at the given time. The file and its directory may not exist yet.
func (m *Manager) RecordingPath(index int, started time.Time) string {
	name := fmt.Sprintf("Section_%d_%s.wav", index, started.Format(recordingStampLayout))
	return filepath.Join(m.recordingsDir, name)
}

// EnsureDir creates the parent directories of path when missing.
func EnsureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	return nil
}

// EnsureBase guarantees the base directory exists.
func (m *Manager) EnsureBase() error {
	if m == nil {
		return errors.New("files.Manager is nil")
	}
	if err := os.MkdirAll(m.basePath, dirPermissions); err != nil {
		return fmt.Errorf("create base directory: %w", err)
	}
	return nil
}
