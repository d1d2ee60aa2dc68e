package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/faizmokh/prompter/internal/config"
	"github.com/faizmokh/prompter/internal/files"
)

func newBrokenConfigApp(t *testing.T) *App {
	t.Helper()
	mgr := newTempManager(t)
	if err := os.WriteFile(mgr.ConfigPath(), []byte("capture: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	app := NewApp(mgr)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestScriptCommandsIgnoreBrokenConfig(t *testing.T) {
	ctx := context.Background()
	app := newBrokenConfigApp(t)
	path := writeScript(t, keynote)

	out := executeCommand(t, NewRootCommand(ctx, app), "version")
	assertContains(t, out, "prompter dev (commit ")

	out = executeCommand(t, NewRootCommand(ctx, app), "sections", path)
	assertContains(t, out, "1. Launch Keynote > Opening (3 words, 00:00:30)")

	out = executeCommand(t, NewRootCommand(ctx, app), "show", path, "1")
	assertContains(t, out, "Good morning everyone.")

	if app.Log == nil {
		t.Fatal("script commands should still get a logger")
	}
	if app.Recorder != nil {
		t.Fatal("script commands should not build a recorder")
	}
}

func TestCaptureCommandsReportBrokenConfig(t *testing.T) {
	app := newBrokenConfigApp(t)

	for _, args := range [][]string{{"devices"}, {"record", "--duration", "10ms"}} {
		cmd := NewRootCommand(context.Background(), app)
		buf := &bytes.Buffer{}
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs(args)

		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "parse config") {
			t.Fatalf("%v: expected parse config error, got %v", args, err)
		}
	}
}

func TestAppSetupCreatesHome(t *testing.T) {
	base := filepath.Join(t.TempDir(), "home")
	mgr, err := files.NewManager(base)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	app := NewApp(mgr)
	t.Cleanup(func() { _ = app.Close() })

	if err := app.setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := os.Stat(mgr.LogPath()); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if got := app.Recorder.Format().SampleRate; got != config.DefaultSampleRate {
		t.Fatalf("sample rate = %d, want %d", got, config.DefaultSampleRate)
	}

	first := app.Recorder
	if err := app.setup(); err != nil || app.Recorder != first {
		t.Fatalf("second setup rebuilt the recorder: %v", err)
	}
}

func TestExportReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	app := newTestApp(t, nil)
	cmd := newExportCommand(context.Background(), app)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--out", "/dev/full", writeScript(t, keynote)})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "export") {
		t.Fatalf("expected export error, got %v", err)
	}
	assertNotContains(t, buf.String(), "Wrote")
}
