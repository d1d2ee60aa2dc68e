package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordingPath(t *testing.T) {
	tmp := t.TempDir()

	mgr, err := NewManager(tmp)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	started := time.Date(2025, time.November, 2, 9, 5, 7, 0, time.UTC)
	path := mgr.RecordingPath(3, started)

	want := filepath.Join(tmp, RecordingsDirName, "Section_3_20251102_090507.wav")
	if path != want {
		t.Fatalf("RecordingPath() = %q, want %q", path, want)
	}
}

func TestSetRecordingsDir(t *testing.T) {
	tmp := t.TempDir()
	mgr, err := NewManager(tmp)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if err := mgr.SetRecordingsDir("takes"); err != nil {
		t.Fatalf("SetRecordingsDir relative: %v", err)
	}
	if got, want := mgr.RecordingsDir(), filepath.Join(tmp, "takes"); got != want {
		t.Fatalf("RecordingsDir() = %q, want %q", got, want)
	}

	abs := filepath.Join(t.TempDir(), "elsewhere")
	if err := mgr.SetRecordingsDir(abs); err != nil {
		t.Fatalf("SetRecordingsDir absolute: %v", err)
	}
	if got := mgr.RecordingsDir(); got != abs {
		t.Fatalf("RecordingsDir() = %q, want %q", got, abs)
	}

	if err := mgr.SetRecordingsDir(""); err != nil {
		t.Fatalf("SetRecordingsDir empty: %v", err)
	}
	if got := mgr.RecordingsDir(); got != abs {
		t.Fatalf("empty dir should keep %q, got %q", abs, got)
	}
}

func TestEnsureDirCreatesParents(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "a", "b", "c", "take.wav")

	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("%q is not a directory", filepath.Dir(path))
	}

	// Second call is a no-op.
	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir second call: %v", err)
	}
}

func TestPathsLiveUnderBase(t *testing.T) {
	tmp := t.TempDir()
	mgr, err := NewManager(tmp)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := mgr.EnsureBase(); err != nil {
		t.Fatalf("EnsureBase: %v", err)
	}

	if got, want := mgr.ConfigPath(), filepath.Join(tmp, ConfigFileName); got != want {
		t.Fatalf("ConfigPath() = %q, want %q", got, want)
	}
	if got, want := mgr.LogPath(), filepath.Join(tmp, LogFileName); got != want {
		t.Fatalf("LogPath() = %q, want %q", got, want)
	}
}
