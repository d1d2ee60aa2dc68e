package script

import (
	"math"
	"strconv"
	"strings"
)

const (
	titlePrefix       = "# "
	subsectionPrefix  = "## "
	categoryPrefix    = "### "
	subCategoryPrefix = "#### "
	durationPrefix    = "~ "
	separator         = "---"
)

// Parse segments document into sections. It never fails: lines it does not
// recognise become body text and unusable directives are dropped.
func Parse(document string) []Section {
	sections, _ := ParseWithWarnings(document)
	return sections
}

// ParseWithWarnings behaves like Parse and also reports every directive it
// dropped and every extra title it treated as body text.
func ParseWithWarnings(document string) ([]Section, []Warning) {
	s := scanner{sections: []Section{}}
	for i, line := range splitLines(document) {
		s.line(i+1, line)
	}
	s.reset()
	return s.sections, s.warnings
}

func splitLines(document string) []string {
	return strings.Split(strings.ReplaceAll(document, "\r\n", "\n"), "\n")
}

// scanner carries the sticky heading path and the open section across lines.
// open is nil while no section is accumulating.
type scanner struct {
	title       string
	subsection  string
	category    string
	subCategory string
	titleSeen   bool

	open     *Section
	sections []Section
	warnings []Warning
}

func (s *scanner) line(n int, line string) {
	switch {
	case strings.HasPrefix(line, titlePrefix) && !s.titleSeen:
		s.reset()
		s.title = strings.TrimSpace(line[len(titlePrefix):])
		s.titleSeen = true
	case strings.HasPrefix(line, subsectionPrefix):
		s.reset()
		s.subsection = strings.TrimSpace(line[len(subsectionPrefix):])
	case strings.HasPrefix(line, categoryPrefix):
		s.reset()
		s.category = strings.TrimSpace(line[len(categoryPrefix):])
	case strings.HasPrefix(line, subCategoryPrefix):
		s.reset()
		s.subCategory = strings.TrimSpace(line[len(subCategoryPrefix):])
	case strings.TrimSpace(line) == separator:
		s.reset()
	case strings.HasPrefix(line, durationPrefix):
		s.duration(n, line)
	case strings.TrimSpace(line) == "":
	default:
		if strings.HasPrefix(line, titlePrefix) {
			s.warn(n, WarningExtraTitle, line)
		}
		s.body(line)
	}
}

func (s *scanner) duration(n int, line string) {
	seconds, ok := parseSeconds(line[len(durationPrefix):])
	if !ok {
		s.warn(n, WarningBadDuration, line)
		return
	}
	if s.open == nil {
		s.warn(n, WarningOrphanDuration, line)
		return
	}
	s.open.SectionTimeSeconds += seconds
}

func (s *scanner) body(line string) {
	if s.open == nil {
		s.open = &Section{
			Title:       s.title,
			Subsection:  s.subsection,
			Category:    s.category,
			SubCategory: s.subCategory,
		}
	}
	s.open.Body += line + "\n"
}

// reset moves the open section, if any, into the output.
func (s *scanner) reset() {
	if s.open == nil {
		return
	}
	s.sections = append(s.sections, *s.open)
	s.open = nil
}

func (s *scanner) warn(n int, kind WarningKind, line string) {
	s.warnings = append(s.warnings, Warning{Line: n, Kind: kind, Text: line})
}

func parseSeconds(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
