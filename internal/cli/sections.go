package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/faizmokh/prompter/internal/export"
	"github.com/faizmokh/prompter/internal/script"
)

func newSectionsCommand(ctx context.Context, app *App) *cobra.Command {
	var (
		asJSON       bool
		showWarnings bool
	)

	cmd := &cobra.Command{
		Use:   "sections <file>",
		Short: "List the sections a script splits into.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, warnings, err := script.LoadFileWithWarnings(args[0])
			if err != nil {
				return err
			}
			app.Log.Debug("script parsed", "path", args[0], "sections", len(sections), "warnings", len(warnings))

			if showWarnings {
				printWarnings(cmd, warnings)
			}
			if asJSON {
				return export.JSON(cmd.OutOrStdout(), sections)
			}
			printSections(cmd, sections)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print sections as JSON")
	cmd.Flags().BoolVar(&showWarnings, "warnings", false, "Report ignored directives on stderr")

	return cmd
}

func newShowCommand(ctx context.Context, app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file> <index>",
		Short: "Print one section of a script (1-based index).",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := script.LoadFile(args[0])
			if err != nil {
				return err
			}
			index, err := parseIndex(args[1], len(sections))
			if err != nil {
				return err
			}
			printSection(cmd, index, sections[index])
			return nil
		},
	}

	return cmd
}
