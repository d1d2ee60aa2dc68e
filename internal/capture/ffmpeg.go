package capture

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// FFmpegBackend captures through an ffmpeg process reading from the platform
// audio input (alsa, avfoundation or dshow).
type FFmpegBackend struct {
	Binary      string
	InputFormat string
}

// NewFFmpegBackend returns a backend using binary (default "ffmpeg") and
// inputFormat (default chosen from the OS).
func NewFFmpegBackend(binary, inputFormat string) *FFmpegBackend {
	if binary == "" {
		binary = "ffmpeg"
	}
	if inputFormat == "" {
		inputFormat = defaultInputFormat(runtime.GOOS)
	}
	return &FFmpegBackend{Binary: binary, InputFormat: inputFormat}
}

func defaultInputFormat(goos string) string {
	switch goos {
	case "darwin":
		return "avfoundation"
	case "windows":
		return "dshow"
	default:
		return "alsa"
	}
}

// Devices runs `ffmpeg -sources` for the input format.
func (b *FFmpegBackend) Devices(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, b.Binary, "-hide_banner", "-sources", b.InputFormat)
	out, err := cmd.Output()
	if err != nil && len(out) == 0 {
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	return parseSources(out), nil
}

// parseSources extracts device names from `ffmpeg -sources` output, which
// lists one device per indented line, optionally marked default with "*",
// followed by a bracketed description.
func parseSources(out []byte) []string {
	var devices []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, " ") {
			continue
		}
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		if i := strings.Index(line, " ["); i >= 0 {
			line = line[:i]
		}
		if line != "" {
			devices = append(devices, line)
		}
	}
	return devices
}

// Open starts ffmpeg writing raw s16le PCM to stdout.
func (b *FFmpegBackend) Open(ctx context.Context, device string, format Format) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, b.Binary, b.args(device, format)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	return &processStream{ReadCloser: stdout, cmd: cmd}, nil
}

func (b *FFmpegBackend) args(device string, format Format) []string {
	input := device
	switch b.InputFormat {
	case "avfoundation":
		input = ":" + device
	case "dshow":
		input = "audio=" + device
	}
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-f", b.InputFormat,
		"-i", input,
		"-ac", strconv.Itoa(format.Channels),
		"-ar", strconv.Itoa(format.SampleRate),
		"-f", "s16le",
		"-",
	}
}

type processStream struct {
	io.ReadCloser
	cmd *exec.Cmd
}

// Close stops ffmpeg. Exit errors caused by the stop are expected and dropped.
func (p *processStream) Close() error {
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	_ = p.ReadCloser.Close()
	_ = p.cmd.Wait()
	return nil
}
