package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/faizmokh/prompter/internal/script"
	"github.com/faizmokh/prompter/internal/session"
)

// parseIndex turns a 1-based position argument into a 0-based index within count.
func parseIndex(value string, count int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse index: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("script has no sections")
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("index %d out of range (1-%d)", n, count)
	}
	return n - 1, nil
}

func formatHeadings(section script.Section) string {
	headings := section.Headings()
	if len(headings) == 0 {
		return "(untitled)"
	}
	return strings.Join(headings, " > ")
}

func formatSummary(section script.Section) string {
	builder := strings.Builder{}
	builder.WriteString(formatHeadings(section))

	words := section.WordCount()
	fmt.Fprintf(&builder, " (%d word", words)
	if words != 1 {
		builder.WriteString("s")
	}
	if section.SectionTimeSeconds > 0 {
		builder.WriteString(", ")
		builder.WriteString(session.FormatElapsed(section.Duration()))
	}
	builder.WriteString(")")

	return builder.String()
}

func printSections(cmd *cobra.Command, sections []script.Section) {
	out := cmd.OutOrStdout()
	if len(sections) == 0 {
		fmt.Fprintln(out, "(no sections)")
		return
	}
	for i, section := range sections {
		fmt.Fprintf(out, "%d. %s\n", i+1, formatSummary(section))
	}
}

func printSection(cmd *cobra.Command, index int, section script.Section) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "#%d %s\n", index+1, formatHeadings(section))
	if section.SectionTimeSeconds > 0 {
		fmt.Fprintf(out, "Time: %s\n", session.FormatElapsed(section.Duration()))
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, section.Body)
}

func printWarnings(cmd *cobra.Command, warnings []script.Warning) {
	out := cmd.ErrOrStderr()
	for _, w := range warnings {
		fmt.Fprintf(out, "line %d: %s: %s\n", w.Line, w.Kind, w.Text)
	}
}
