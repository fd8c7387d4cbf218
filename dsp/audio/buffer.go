// Package audio provides the immutable multi-channel PCM buffer type that
// the analysis and composition packages operate on.
//
// A Buffer is never mutated after construction; operations that change audio
// content always produce a new Buffer. Constructors copy their input so the
// caller cannot alias internal storage.
package audio

import (
	"errors"
	"fmt"
)

// ErrNoChannels is returned when a buffer is constructed without channel data.
var ErrNoChannels = errors.New("audio: buffer requires at least one channel")

// Buffer is an immutable view of one or more channels of PCM samples at a
// fixed sample rate. All channels have the same frame count.
type Buffer struct {
	sampleRate int
	channels   [][]float64
	frames     int
}

// New constructs a Buffer from the given channel data. Every channel must
// have the same length. The sample data is copied.
func New(sampleRate int, channels [][]float64) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be > 0: %d", sampleRate)
	}
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	frames := len(channels[0])
	for i, ch := range channels {
		if len(ch) != frames {
			return nil, fmt.Errorf("audio: channel %d has %d frames, want %d", i, len(ch), frames)
		}
	}

	copied := make([][]float64, len(channels))
	for i, ch := range channels {
		copied[i] = make([]float64, frames)
		copy(copied[i], ch)
	}

	return &Buffer{sampleRate: sampleRate, channels: copied, frames: frames}, nil
}

// NewMono constructs a single-channel Buffer. The sample data is copied.
func NewMono(sampleRate int, samples []float64) (*Buffer, error) {
	return New(sampleRate, [][]float64{samples})
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Channels returns the number of channels.
func (b *Buffer) Channels() int { return len(b.channels) }

// Frames returns the number of samples per channel.
func (b *Buffer) Frames() int { return b.frames }

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.frames) / float64(b.sampleRate)
}

// Channel returns the samples of channel i. The returned slice is the
// buffer's internal storage and must be treated as read-only.
func (b *Buffer) Channel(i int) []float64 {
	return b.channels[i]
}

// Mixdown returns a new mono slice containing the per-frame mean across all
// channels. For a mono buffer this is a copy of the single channel.
func (b *Buffer) Mixdown() []float64 {
	out := make([]float64, b.frames)
	if len(b.channels) == 1 {
		copy(out, b.channels[0])
		return out
	}

	for _, ch := range b.channels {
		for i, v := range ch {
			out[i] += v
		}
	}

	inv := 1 / float64(len(b.channels))
	for i := range out {
		out[i] *= inv
	}
	return out
}
