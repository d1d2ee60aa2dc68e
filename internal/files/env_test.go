package files

import (
	"path/filepath"
	"testing"
)

func TestResolveBasePathHonorsPrompterHome(t *testing.T) {
	tmp := t.TempDir()
	custom := filepath.Join(tmp, "custom-root")

	t.Setenv(HomeEnv, custom)

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}
	if got != custom {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, custom)
	}
}

func TestResolveBasePathExpandsTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(HomeEnv, "~/prompter-data")

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}

	want := filepath.Join(home, "prompter-data")
	if got != want {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, want)
	}
}

func TestResolveBasePathDefaultsToHomeDotPrompter(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(HomeEnv, "")

	got, err := ResolveBasePath()
	if err != nil {
		t.Fatalf("ResolveBasePath() error = %v", err)
	}

	want := filepath.Join(home, DefaultDirName)
	if got != want {
		t.Fatalf("ResolveBasePath() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TALKS", "/srv/talks")

	cases := map[string]string{
		"~":                 home,
		"~/notes/talk.md":   filepath.Join(home, "notes", "talk.md"),
		"$TALKS/intro.md":   "/srv/talks/intro.md",
		"/tmp/a/../b.wav":   "/tmp/b.wav",
		"  /tmp/spaced.md ": "/tmp/spaced.md",
	}
	for input, want := range cases {
		got, err := ExpandPath(input)
		if err != nil {
			t.Fatalf("ExpandPath(%q) error = %v", input, err)
		}
		if got != want {
			t.Fatalf("ExpandPath(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestExpandPathMakesRelativeAbsolute(t *testing.T) {
	got, err := ExpandPath("talk.md")
	if err != nil {
		t.Fatalf("ExpandPath error = %v", err)
	}
	if !filepath.IsAbs(got) || filepath.Base(got) != "talk.md" {
		t.Fatalf("ExpandPath(talk.md) = %q", got)
	}
}
