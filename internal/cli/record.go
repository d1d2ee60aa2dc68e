package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/prompter/internal/capture"
)

// fullPoll is how often record checks whether the buffer hit its bound.
const fullPoll = 100 * time.Millisecond

func newDevicesCommand(ctx context.Context, app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List audio input devices available for recording.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := app.Recorder.Devices(ctx)
			if err != nil {
				if errors.Is(err, capture.ErrNoDevice) {
					fmt.Fprintln(cmd.OutOrStdout(), "No input devices found")
					return nil
				}
				return err
			}
			for i, d := range devices {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, d)
			}
			return nil
		},
	}

	return cmd
}

func newRecordCommand(ctx context.Context, app *App) *cobra.Command {
	var (
		deviceFlag   string
		sectionFlag  int
		durationFlag time.Duration
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record audio for a section without the TUI until the duration passes or Ctrl-C.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sectionFlag < 0 {
				return fmt.Errorf("invalid section %d", sectionFlag)
			}
			device := deviceFlag
			if device == "" {
				device = app.Config.Capture.Device
			}
			limit := durationFlag
			if limit <= 0 {
				limit = app.Config.Capture.MaxDuration
			}

			if err := app.Recorder.Start(ctx, device, limit); err != nil {
				if errors.Is(err, capture.ErrNoDevice) {
					return fmt.Errorf("record: no microphone detected: %w", err)
				}
				return err
			}
			started, _ := app.Recorder.Started()
			format := app.Recorder.Format()
			app.Log.Info("record started", "device", app.Recorder.Device(), "sample_rate", format.SampleRate, "channels", format.Channels, "limit", limit)
			fmt.Fprintf(cmd.OutOrStdout(), "Recording from %s for up to %s...\n", app.Recorder.Device(), limit)

			waitForStop(ctx, app.Recorder, limit)

			path := app.Manager.RecordingPath(sectionFlag, started)
			if err := app.Recorder.StopAndSave(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&deviceFlag, "device", "", "Input device (default: configured or first available)")
	cmd.Flags().IntVar(&sectionFlag, "section", 0, "Section index used in the file name")
	cmd.Flags().DurationVar(&durationFlag, "duration", 0, "Stop after this long (default: capture.max_duration)")

	return cmd
}

// waitForStop blocks until ctx is done, limit elapses or the recorder's buffer fills.
func waitForStop(ctx context.Context, recorder *capture.Recorder, limit time.Duration) {
	timer := time.NewTimer(limit)
	defer timer.Stop()
	poll := time.NewTicker(fullPoll)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			return
		case <-poll.C:
			if recorder.Full() {
				return
			}
		}
	}
}
