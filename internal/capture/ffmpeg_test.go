package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSources(t *testing.T) {
	out := []byte(`Auto-detected sources for alsa:
  * default [Default ALSA Output (currently PulseAudio Sound Server)]
  sysdefault:CARD=PCH [HDA Intel PCH, ALC3246 Analog]
  hw:CARD=PCH,DEV=0 [HDA Intel PCH, ALC3246 Analog]

`)
	got := parseSources(out)
	want := []string{"default", "sysdefault:CARD=PCH", "hw:CARD=PCH,DEV=0"}
	assert.Equal(t, want, got)
}

func TestParseSourcesEmpty(t *testing.T) {
	assert.Empty(t, parseSources([]byte("Auto-detected sources for alsa:\n")))
	assert.Empty(t, parseSources(nil))
}

func TestFFmpegArgs(t *testing.T) {
	format := Format{SampleRate: 44100, Channels: 1}

	tests := []struct {
		inputFormat string
		device      string
		wantInput   string
	}{
		{"alsa", "default", "default"},
		{"avfoundation", "0", ":0"},
		{"dshow", "Microphone", "audio=Microphone"},
	}
	for _, tt := range tests {
		b := NewFFmpegBackend("", tt.inputFormat)
		args := b.args(tt.device, format)
		assert.Equal(t, []string{
			"-hide_banner", "-loglevel", "error",
			"-f", tt.inputFormat,
			"-i", tt.wantInput,
			"-ac", "1",
			"-ar", "44100",
			"-f", "s16le",
			"-",
		}, args)
		assert.Equal(t, "ffmpeg", b.Binary)
	}
}

func TestDefaultInputFormat(t *testing.T) {
	assert.Equal(t, "avfoundation", defaultInputFormat("darwin"))
	assert.Equal(t, "dshow", defaultInputFormat("windows"))
	assert.Equal(t, "alsa", defaultInputFormat("linux"))
}
