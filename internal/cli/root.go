package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/prompter/internal/capture"
	"github.com/faizmokh/prompter/internal/config"
	"github.com/faizmokh/prompter/internal/files"
	"github.com/faizmokh/prompter/internal/logging"
	"github.com/faizmokh/prompter/internal/session"
	"github.com/faizmokh/prompter/internal/ui"
)

// App bundles the collaborators every command needs. Config, Recorder and
// Log are filled in lazily so commands that only read scripts keep working
// when config.yaml is broken or the home directory is read-only.
type App struct {
	Manager  *files.Manager
	Config   config.Config
	Recorder *capture.Recorder
	Log      *slog.Logger

	closer io.Closer
}

// NewApp returns an App rooted at manager. Nothing is loaded until a command runs.
func NewApp(manager *files.Manager) *App {
	return &App{Manager: manager}
}

// setup loads configuration and wires the file logger and an ffmpeg-backed
// recorder. It is a no-op once a recorder is present.
func (a *App) setup() error {
	if a.Recorder != nil {
		return nil
	}
	cfg, err := config.Load(a.Manager.ConfigPath())
	if err != nil {
		return err
	}
	if err := a.Manager.EnsureBase(); err != nil {
		return err
	}
	if err := a.Manager.SetRecordingsDir(cfg.Capture.RecordingsDir); err != nil {
		return err
	}

	log, closer, err := logging.Open(a.Manager.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	log.Debug("prompter home", "base", a.Manager.BasePath(), "recordings", a.Manager.RecordingsDir())

	backend := capture.NewFFmpegBackend(cfg.Capture.FFmpeg, cfg.Capture.InputFormat)
	a.Config = cfg
	a.Log, a.closer = log, closer
	a.Recorder = capture.NewRecorder(backend,
		capture.WithFormat(capture.Format{SampleRate: cfg.Capture.SampleRate, Channels: 1}),
		capture.WithLogger(log),
	)
	return nil
}

// ensureLog gives script-only commands a logger. Config and log file problems
// degrade to defaults and a discarding logger instead of failing the command.
func (a *App) ensureLog() {
	if a.Log != nil {
		return
	}
	level := config.DefaultLogLevel
	if cfg, err := config.Load(a.Manager.ConfigPath()); err == nil {
		level = cfg.LogLevel
	}
	log, closer, err := logging.Open(a.Manager.LogPath(), level)
	if err != nil {
		a.Log = logging.Discard()
		return
	}
	a.Log, a.closer = log, closer
}

// Close releases the log file, if one was opened.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

func (a *App) style() session.Style {
	return session.Style{
		FontSize:   a.Config.Style.FontSize,
		TextColor:  a.Config.Style.TextColor,
		Background: a.Config.Style.Background,
	}
}

func withScriptLogger(app *App, cmd *cobra.Command) *cobra.Command {
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app.ensureLog()
		return nil
	}
	return cmd
}

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompter [file]",
		Short: "Present a markdown script one section at a time, with timers and audio capture.",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			m := ui.NewModel(ctx, app.Manager, app.Recorder, ui.Options{
				Path:        path,
				Device:      app.Config.Capture.Device,
				MaxDuration: app.Config.Capture.MaxDuration,
				AutoAdvance: app.Config.AutoAdvance,
				Style:       app.style(),
				Logger:      app.Log,
			})
			if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	version := newVersionCommand()
	version.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return nil }

	cmd.AddCommand(
		withScriptLogger(app, newSectionsCommand(ctx, app)),
		withScriptLogger(app, newShowCommand(ctx, app)),
		withScriptLogger(app, newExportCommand(ctx, app)),
		newDevicesCommand(ctx, app),
		newRecordCommand(ctx, app),
		version,
	)

	return cmd
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	manager, err := files.NewManager("")
	if err != nil {
		return err
	}
	app := NewApp(manager)
	defer app.Close()

	cmd := NewRootCommand(ctx, app)
	return cmd.ExecuteContext(ctx)
}

// Main is a helper used by cmd/prompter/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
