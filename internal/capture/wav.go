package capture

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/faizmokh/prompter/internal/files"
)

const pcmFormat = 1

// WriteWAV encodes signed 16-bit little endian pcm into a WAV file at path.
// A trailing partial frame is dropped.
func WriteWAV(path string, format Format, pcm []byte) error {
	if format.Channels <= 0 || format.SampleRate <= 0 {
		return fmt.Errorf("invalid wav format %+v", format)
	}
	if err := files.EnsureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	pcm = pcm[:len(pcm)-len(pcm)%format.frameSize()]
	samples := make([]int, len(pcm)/bytesPerSample)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*bytesPerSample:])))
	}

	enc := wav.NewEncoder(f, format.SampleRate, 8*bytesPerSample, format.Channels, pcmFormat)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		Data:           samples,
		SourceBitDepth: 8 * bytesPerSample,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return f.Close()
}
