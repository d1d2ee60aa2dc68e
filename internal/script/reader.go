package script

import (
	"fmt"
	"io"
	"os"
)

// Load reads r to the end and parses the result.
func Load(r io.Reader) ([]Section, error) {
	if r == nil {
		return []Section{}, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(string(data)), nil
}

// LoadFile parses the script stored at path.
func LoadFile(path string) ([]Section, error) {
	sections, _, err := LoadFileWithWarnings(path)
	return sections, err
}

// LoadFileWithWarnings parses the script stored at path and also returns the
// lines the parser dropped.
func LoadFileWithWarnings(path string) ([]Section, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open script: %w", err)
	}
	sections, warnings := ParseWithWarnings(string(data))
	return sections, warnings, nil
}
