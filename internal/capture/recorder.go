// Package capture records audio from an input device into memory and
// persists it as a WAV file.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxDuration bounds a capture when the caller passes zero.
	DefaultMaxDuration = 5 * time.Minute

	bytesPerSample = 2
	readChunk      = 4096
)

// Format describes the PCM stream a Backend produces: signed 16-bit little endian.
type Format struct {
	SampleRate int
	Channels   int
}

// DefaultFormat is 44.1kHz mono.
var DefaultFormat = Format{SampleRate: 44100, Channels: 1}

func (f Format) frameSize() int {
	return f.Channels * bytesPerSample
}

func (f Format) bytesFor(d time.Duration) int {
	frames := int(d.Seconds() * float64(f.SampleRate))
	return frames * f.frameSize()
}

// Backend opens raw PCM streams from input devices.
type Backend interface {
	Devices(ctx context.Context) ([]string, error)
	Open(ctx context.Context, device string, format Format) (io.ReadCloser, error)
}

// Recorder runs at most one capture at a time. It is safe for concurrent use.
type Recorder struct {
	backend Backend
	format  Format
	now     func() time.Time
	log     *slog.Logger

	mu     sync.Mutex
	active *take
}

// RecorderOption customizes a Recorder.
type RecorderOption func(*Recorder)

// WithFormat sets the sample rate and channel count requested from the backend.
func WithFormat(format Format) RecorderOption {
	return func(r *Recorder) {
		if format.SampleRate > 0 {
			r.format.SampleRate = format.SampleRate
		}
		if format.Channels > 0 {
			r.format.Channels = format.Channels
		}
	}
}

// WithLogger routes recorder diagnostics to log.
func WithLogger(log *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.log = log
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder wires a Recorder to backend.
func NewRecorder(backend Backend, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		backend: backend,
		format:  DefaultFormat,
		now:     time.Now,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Format returns the PCM format captures are recorded in.
func (r *Recorder) Format() Format {
	return r.format
}

// Devices lists available input devices. It returns ErrNoDevice when there are none.
func (r *Recorder) Devices(ctx context.Context) ([]string, error) {
	devices, err := r.backend.Devices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	if len(devices) == 0 {
		return nil, ErrNoDevice
	}
	return devices, nil
}

// Start begins capturing from device into memory. An empty device selects the
// first available one. Capture keeps at most maxDuration of audio; anything
// after that is discarded until StopAndSave.
func (r *Recorder) Start(ctx context.Context, device string, maxDuration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return ErrAlreadyRecording
	}
	if device == "" {
		devices, err := r.Devices(ctx)
		if err != nil {
			return err
		}
		device = devices[0]
	}
	if maxDuration <= 0 {
		maxDuration = DefaultMaxDuration
	}

	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := r.backend.Open(streamCtx, device, r.format)
	if err != nil {
		cancel()
		return fmt.Errorf("open %s: %w", device, err)
	}

	t := &take{
		device:  device,
		started: r.now(),
		limit:   r.format.bytesFor(maxDuration),
		cancel:  cancel,
		stream:  stream,
	}
	t.group.Go(t.fill)
	r.active = t

	r.log.Info("capture started", "device", device, "max", maxDuration)
	return nil
}

// IsRecording reports whether a capture is active on device. An empty device
// matches any active capture.
func (r *Recorder) IsRecording(device string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil && (device == "" || r.active.device == device)
}

// Device returns the device of the active capture, or "".
func (r *Recorder) Device() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return ""
	}
	return r.active.device
}

// Elapsed returns how long the active capture has been running.
func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return 0
	}
	return r.now().Sub(r.active.started)
}

// Started returns when the active capture began.
func (r *Recorder) Started() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil {
		return time.Time{}, false
	}
	return r.active.started, true
}

// Full reports whether the active capture has reached its duration bound.
func (r *Recorder) Full() bool {
	r.mu.Lock()
	t := r.active
	r.mu.Unlock()
	if t == nil {
		return false
	}
	return t.isFull()
}

// StopAndSave ends the active capture and writes it to path as a WAV file,
// creating any missing directories.
func (r *Recorder) StopAndSave(path string) error {
	r.mu.Lock()
	t := r.active
	r.active = nil
	r.mu.Unlock()

	if t == nil {
		return ErrNotRecording
	}

	pcm, streamErr := t.stop()
	if streamErr != nil {
		r.log.Warn("capture stream ended with error", "device", t.device, "error", streamErr)
	}

	if err := WriteWAV(path, r.format, pcm); err != nil {
		return errors.Join(err, streamErr)
	}
	r.log.Info("capture saved", "device", t.device, "path", path, "bytes", len(pcm))
	if streamErr != nil {
		return fmt.Errorf("capture stream: %w", streamErr)
	}
	return nil
}

// take is one in-flight capture.
type take struct {
	device  string
	started time.Time
	limit   int
	cancel  context.CancelFunc
	stream  io.ReadCloser
	group   errgroup.Group

	mu       sync.Mutex
	buf      bytes.Buffer
	full     bool
	stopping bool
}

func (t *take) fill() error {
	chunk := make([]byte, readChunk)
	for {
		n, err := t.stream.Read(chunk)
		if n > 0 && t.append(chunk[:n]) {
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) || t.isStopping() {
				return nil
			}
			return err
		}
	}
}

// append stores data up to the limit and reports whether the limit was reached.
func (t *take) append(data []byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	room := t.limit - t.buf.Len()
	if len(data) >= room {
		t.buf.Write(data[:room])
		t.full = true
		return true
	}
	t.buf.Write(data)
	return false
}

func (t *take) isFull() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.full
}

func (t *take) isStopping() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopping
}

func (t *take) stop() ([]byte, error) {
	t.mu.Lock()
	t.stopping = true
	t.mu.Unlock()

	t.cancel()
	closeErr := t.stream.Close()
	err := t.group.Wait()
	if err == nil && closeErr != nil {
		err = closeErr
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return bytes.Clone(t.buf.Bytes()), err
}
