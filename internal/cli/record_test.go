package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/faizmokh/prompter/internal/capture"
)

func TestDevicesListsBackendDevices(t *testing.T) {
	app := newTestApp(t, []string{"default", "hw:1,0"})

	out := executeCommand(t, newDevicesCommand(context.Background(), app))
	assertContains(t, out, "1. default\n2. hw:1,0\n")
}

func TestDevicesWithoutDevices(t *testing.T) {
	app := newTestApp(t, nil)

	out := executeCommand(t, newDevicesCommand(context.Background(), app))
	assertContains(t, out, "No input devices found")
}

func TestRecordSavesNamedWAV(t *testing.T) {
	app := newTestApp(t, []string{"default"})

	out := executeCommand(t, newRecordCommand(context.Background(), app),
		"--section", "2",
		"--duration", "50ms",
	)
	assertContains(t, out, "Recording from default for up to 50ms...")

	want := filepath.Join(app.Manager.RecordingsDir(), "Section_2_20251121_081500.wav")
	assertContains(t, out, "Saved "+want)
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("recording not written: %v", err)
	}
	if app.Recorder.IsRecording("") {
		t.Fatal("recorder still active after record")
	}
}

func TestRecordStopsWhenContextCancelled(t *testing.T) {
	app := newTestApp(t, []string{"default"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	out := executeCommand(t, newRecordCommand(ctx, app), "--duration", "1m")
	if time.Since(start) > 10*time.Second {
		t.Fatal("record ignored cancellation")
	}
	assertContains(t, out, "Saved ")
}

func TestRecordWithoutDevice(t *testing.T) {
	app := newTestApp(t, nil)
	cmd := newRecordCommand(context.Background(), app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--duration", "10ms"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "no microphone detected") {
		t.Fatalf("expected no microphone error, got %v", err)
	}
	if !errors.Is(err, capture.ErrNoDevice) {
		t.Fatalf("error does not wrap ErrNoDevice: %v", err)
	}
}
