package version

import (
	"runtime/debug"
	"testing"
)

func TestFromSettingsFillsUnsetFields(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.time", Value: "2025-11-02T09:00:00Z"},
	}

	commit, date := fromSettings(settings, "none", "unknown")
	if commit != "0123456789ab" {
		t.Fatalf("commit = %q", commit)
	}
	if date != "2025-11-02T09:00:00Z" {
		t.Fatalf("date = %q", date)
	}
}

func TestFromSettingsKeepsLinkerValues(t *testing.T) {
	settings := []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}}

	commit, date := fromSettings(settings, "abc123", "2025-01-01")
	if commit != "abc123" || date != "2025-01-01" {
		t.Fatalf("got %q %q", commit, date)
	}
}
