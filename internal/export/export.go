// Package export writes parsed scripts in formats meant for other tools or for print.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/faizmokh/prompter/internal/script"
	"github.com/faizmokh/prompter/internal/session"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected json|html)", value)
	}
}

// Write dispatches to JSON or HTML.
func Write(w io.Writer, format Format, title string, sections []script.Section) error {
	switch format {
	case FormatJSON:
		return JSON(w, sections)
	case FormatHTML:
		return HTML(w, title, sections)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// JSON writes sections as an indented JSON array.
func JSON(w io.Writer, sections []script.Section) error {
	if sections == nil {
		sections = []script.Section{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sections)
}

type htmlSection struct {
	Number   int
	Headings []string
	Budget   string
	Body     template.HTML
}

var page = template.Must(template.New("script").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Sections}}<section id="section-{{.Number}}">
<header>{{range $i, $h := .Headings}}{{if $i}} / {{end}}{{$h}}{{end}}{{if .Budget}} <small>({{.Budget}})</small>{{end}}</header>
{{.Body}}</section>
{{end}}</body>
</html>
`))

// HTML renders a printable page with one <section> per script section. Body
// text goes through goldmark, so markdown inside bodies is honoured here even
// though the script parser itself treats it as plain text.
func HTML(w io.Writer, title string, sections []script.Section) error {
	md := goldmark.New()

	data := struct {
		Title    string
		Sections []htmlSection
	}{Title: title}

	for i, s := range sections {
		var body bytes.Buffer
		if err := md.Convert([]byte(s.Body), &body); err != nil {
			return fmt.Errorf("render section %d: %w", i+1, err)
		}
		item := htmlSection{
			Number:   i + 1,
			Headings: s.Headings(),
			Body:     template.HTML(body.String()),
		}
		if s.SectionTimeSeconds > 0 {
			item.Budget = session.FormatElapsed(s.Duration())
		}
		data.Sections = append(data.Sections, item)
	}

	return page.Execute(w, data)
}
