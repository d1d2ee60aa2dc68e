package script

import (
	"strings"
	"time"
)

// Section is one span of script body text together with the heading path
// that was in effect when it opened and its accumulated time budget.
type Section struct {
	Title              string  `json:"title"`
	Subsection         string  `json:"subsection"`
	Category           string  `json:"category"`
	SubCategory        string  `json:"sub_category"`
	Body               string  `json:"body"`
	SectionTimeSeconds float64 `json:"section_time_seconds"`
}

// Duration converts SectionTimeSeconds to a time.Duration.
func (s Section) Duration() time.Duration {
	return time.Duration(s.SectionTimeSeconds * float64(time.Second))
}

// Headings returns the non-empty heading texts from title down to sub-category.
func (s Section) Headings() []string {
	var path []string
	for _, h := range []string{s.Title, s.Subsection, s.Category, s.SubCategory} {
		if h != "" {
			path = append(path, h)
		}
	}
	return path
}

// WordCount returns the number of whitespace separated words in Body.
func (s Section) WordCount() int {
	return len(strings.Fields(s.Body))
}

// WarningKind classifies lines the parser accepted but could not use.
type WarningKind uint8

const (
	// WarningBadDuration marks a "~ " directive whose value is not a finite number.
	WarningBadDuration WarningKind = iota + 1
	// WarningOrphanDuration marks a "~ " directive seen while no section was open.
	WarningOrphanDuration
	// WarningExtraTitle marks a "# " line after the title was already set.
	WarningExtraTitle
)

func (k WarningKind) String() string {
	switch k {
	case WarningBadDuration:
		return "bad duration"
	case WarningOrphanDuration:
		return "duration outside section"
	case WarningExtraTitle:
		return "extra title treated as body"
	default:
		return "unknown"
	}
}

// Warning points at a line that was dropped or downgraded during a parse.
// Line is 1-based.
type Warning struct {
	Line int
	Kind WarningKind
	Text string
}
