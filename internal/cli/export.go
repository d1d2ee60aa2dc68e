package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faizmokh/prompter/internal/export"
	"github.com/faizmokh/prompter/internal/files"
	"github.com/faizmokh/prompter/internal/script"
)

func newExportCommand(ctx context.Context, app *App) *cobra.Command {
	var (
		formatFlag string
		outFlag    string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write a script's sections as JSON or printable HTML.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			sections, err := script.LoadFile(args[0])
			if err != nil {
				return err
			}

			title := exportTitle(args[0], sections)
			if outFlag == "" {
				if err := export.Write(cmd.OutOrStdout(), format, title, sections); err != nil {
					return fmt.Errorf("export %s: %w", format, err)
				}
				return nil
			}
			if err := writeExportFile(outFlag, format, title, sections); err != nil {
				return err
			}
			app.Log.Info("script exported", "path", outFlag, "format", string(format), "sections", len(sections))
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d sections to %s\n", len(sections), outFlag)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", string(export.FormatJSON), "Output format (json|html)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Write to this file instead of stdout")

	return cmd
}

// writeExportFile renders sections into the file at target, creating parent
// directories. A failed flush on close is reported like a failed write.
func writeExportFile(target string, format export.Format, title string, sections []script.Section) error {
	path, err := files.ExpandPath(target)
	if err != nil {
		return err
	}
	if err := files.EnsureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := export.Write(f, format, title, sections); err != nil {
		_ = f.Close()
		return fmt.Errorf("export %s: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	return nil
}

// exportTitle prefers the script's own title and falls back to the file name.
func exportTitle(path string, sections []script.Section) string {
	for _, s := range sections {
		if s.Title != "" {
			return s.Title
		}
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
