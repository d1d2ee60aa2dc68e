package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/prompter/internal/session"
)

var (
	subsectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DC4E4"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95"))

	subCategoryStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(lipgloss.Color("#B8C0E0"))

	timerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	overBudgetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	recordingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#D20F39")).
			Bold(true).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)
)

// bodyWidth narrows the text column as the font grows, so larger text means
// fewer words per line the way it would on a real prompter.
func bodyWidth(termWidth, fontSize int) int {
	const minWidth = 20
	avail := termWidth - 4
	if avail < minWidth {
		return minWidth
	}
	w := avail * session.DefaultFontSize / fontSize
	if w > avail {
		w = avail
	}
	if w < minWidth {
		w = minWidth
	}
	return w
}

func titleStyle(style session.Style) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(style.TextColor)).
		Background(lipgloss.Color(style.Background)).
		Padding(0, 1)
}

func bodyStyle(style session.Style, width int) lipgloss.Style {
	s := lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Foreground(lipgloss.Color(style.TextColor)).
		Background(lipgloss.Color(style.Background))
	if style.FontSize >= 24 {
		s = s.Bold(true)
	}
	return s
}
