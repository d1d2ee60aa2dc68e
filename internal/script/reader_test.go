package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileParsesScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talk.md")
	content := "# Demo\n## Intro\nHello there.\n~ 90\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	sections, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, sections, 1)

	s := sections[0]
	assert.Equal(t, []string{"Demo", "Intro"}, s.Headings())
	assert.Equal(t, 90*time.Second, s.Duration())
	assert.Equal(t, 2, s.WordCount())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadPropagatesReadErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(iotest.ErrReader(boom))
	assert.ErrorIs(t, err, boom)
}

func TestLoadNilReader(t *testing.T) {
	sections, err := Load(nil)
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestLoadMatchesParse(t *testing.T) {
	doc := "## A\none\n---\ntwo\n"
	sections, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, Parse(doc), sections)
}

func TestSectionDurationFractional(t *testing.T) {
	s := Section{SectionTimeSeconds: 1.5}
	assert.Equal(t, 1500*time.Millisecond, s.Duration())
}
