package session

const (
	MinFontSize     = 8
	MaxFontSize     = 40
	FontStep        = 2
	DefaultFontSize = 16
)

// Style describes how section text is drawn. Colors are lipgloss color strings.
type Style struct {
	FontSize   int
	TextColor  string
	Background string
}

// DefaultStyle is light text on a dark background at the default size.
func DefaultStyle() Style {
	return Style{
		FontSize:   DefaultFontSize,
		TextColor:  "#F5F5F5",
		Background: "#1E1E1E",
	}
}

func (s Style) normalized() Style {
	def := DefaultStyle()
	if s.FontSize == 0 {
		s.FontSize = def.FontSize
	}
	s.FontSize = clampFont(s.FontSize)
	if s.TextColor == "" {
		s.TextColor = def.TextColor
	}
	if s.Background == "" {
		s.Background = def.Background
	}
	return s
}

func clampFont(size int) int {
	if size < MinFontSize {
		return MinFontSize
	}
	if size > MaxFontSize {
		return MaxFontSize
	}
	return size
}
