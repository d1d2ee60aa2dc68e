package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a human-friendly version string that surfaces build metadata.
// Commit and date fall back to the VCS stamp Go embeds when -ldflags left them unset.
func Info() string {
	commit, date := Commit, Date
	if info, ok := debug.ReadBuildInfo(); ok {
		commit, date = fromSettings(info.Settings, commit, date)
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, commit, date)
}

func fromSettings(settings []debug.BuildSetting, commit, date string) (string, string) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "none" && s.Value != "" {
				commit = s.Value
				if len(commit) > 12 {
					commit = commit[:12]
				}
			}
		case "vcs.time":
			if date == "unknown" && s.Value != "" {
				date = s.Value
			}
		}
	}
	return commit, date
}
