// Package audio wraps raw PCM speech in a WAV container for playback.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/heartmarshall/langassist/internal/domain"
)

// ContentType is the MIME type of EncodeWAV output.
const ContentType = "audio/wav"

const headerSize = 44

var ErrEmpty = errors.New("audio: empty payload")

// EncodeWAV returns a RIFF/WAVE file holding the 16-bit PCM samples of a.
// A zero sample rate or channel count falls back to 24000 Hz mono.
func EncodeWAV(a *domain.Audio) ([]byte, error) {
	if a == nil || len(a.Data) == 0 {
		return nil, ErrEmpty
	}

	rate := a.SampleRate
	if rate <= 0 {
		rate = domain.AudioSampleRate
	}
	channels := a.Channels
	if channels <= 0 {
		channels = domain.AudioChannels
	}
	blockAlign := a.FrameSize()
	if len(a.Data)%blockAlign != 0 {
		return nil, fmt.Errorf("audio: %d bytes is not a whole number of %d-byte frames", len(a.Data), blockAlign)
	}

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(a.Data)))
	hdr := []any{
		[4]byte{'R', 'I', 'F', 'F'},
		uint32(36 + len(a.Data)),
		[4]byte{'W', 'A', 'V', 'E'},
		[4]byte{'f', 'm', 't', ' '},
		uint32(16), // fmt chunk size
		uint16(1),  // PCM
		uint16(channels),
		uint32(rate),
		uint32(rate * blockAlign), // byte rate
		uint16(blockAlign),
		uint16(domain.AudioBitsPerSample),
		[4]byte{'d', 'a', 't', 'a'},
		uint32(len(a.Data)),
	}
	for _, v := range hdr {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("audio: write header: %w", err)
		}
	}
	buf.Write(a.Data)
	return buf.Bytes(), nil
}

// Duration returns the playback length of a in seconds.
func Duration(a *domain.Audio) float64 {
	if a == nil || len(a.Data) == 0 {
		return 0
	}
	rate, channels := a.SampleRate, a.Channels
	if rate <= 0 {
		rate = domain.AudioSampleRate
	}
	if channels <= 0 {
		channels = domain.AudioChannels
	}
	frames := len(a.Data) / (channels * domain.AudioBitsPerSample / 8)
	return float64(frames) / float64(rate)
}
