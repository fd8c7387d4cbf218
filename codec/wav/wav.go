// Package wav encodes and decodes canonical 16-bit linear-PCM RIFF/WAVE
// data. This is the fixed boundary format for collaborators that persist or
// transport a mixed loop.
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-loop/dsp/audio"
)

// ErrBadFormat is returned when input bytes are not a supported WAV
// encoding.
var ErrBadFormat = errors.New("wav: unsupported or malformed data")

const (
	headerSize    = 44
	fmtChunkSize  = 16
	pcmFormatCode = 1
	bitsPerSample = 16
)

// Encode serializes the buffer as a canonical 44-byte-header WAV file with
// interleaved 16-bit little-endian samples. Floats are clamped to [-1, 1]
// and scaled by 32768 (negative) or 32767 (non-negative).
func Encode(buf *audio.Buffer) ([]byte, error) {
	if buf == nil {
		return nil, errors.New("wav: buffer must not be nil")
	}

	channels := buf.Channels()
	frames := buf.Frames()
	dataBytes := frames * channels * 2

	var out bytes.Buffer
	out.Grow(headerSize + dataBytes)

	out.WriteString("RIFF")
	writeU32(&out, uint32(36+dataBytes))
	out.WriteString("WAVE")

	out.WriteString("fmt ")
	writeU32(&out, fmtChunkSize)
	writeU16(&out, pcmFormatCode)
	writeU16(&out, uint16(channels))
	writeU32(&out, uint32(buf.SampleRate()))
	writeU32(&out, uint32(buf.SampleRate()*channels*2)) // byte rate
	writeU16(&out, uint16(channels*2))                  // block align
	writeU16(&out, bitsPerSample)

	out.WriteString("data")
	writeU32(&out, uint32(dataBytes))

	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			writeU16(&out, uint16(quantize(buf.Channel(ch)[i])))
		}
	}

	return out.Bytes(), nil
}

// Decode parses canonical 16-bit PCM WAV bytes back into a buffer. Chunks
// other than "fmt " and "data" are skipped. Unsupported encodings and
// malformed data yield an error wrapping ErrBadFormat.
func Decode(data []byte) (*audio.Buffer, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than a WAV header", ErrBadFormat, len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: missing RIFF/WAVE markers", ErrBadFormat)
	}

	var (
		channels   int
		sampleRate int
		haveFmt    bool
	)

	pos := 12
	for pos+8 <= len(data) {
		chunkID := string(data[pos : pos+4])
		chunkLen := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+chunkLen > len(data) {
			return nil, fmt.Errorf("%w: chunk %q exceeds input", ErrBadFormat, chunkID)
		}

		switch chunkID {
		case "fmt ":
			if chunkLen < fmtChunkSize {
				return nil, fmt.Errorf("%w: fmt chunk too short", ErrBadFormat)
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != pcmFormatCode {
				return nil, fmt.Errorf("%w: format code %d, only integer PCM supported", ErrBadFormat, format)
			}
			bits := binary.LittleEndian.Uint16(data[body+14 : body+16])
			if bits != bitsPerSample {
				return nil, fmt.Errorf("%w: %d bits per sample, only 16 supported", ErrBadFormat, bits)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			if channels <= 0 || sampleRate <= 0 {
				return nil, fmt.Errorf("%w: invalid fmt fields", ErrBadFormat)
			}
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrBadFormat)
			}
			return decodeData(data[body:body+chunkLen], channels, sampleRate)
		}

		// Chunks are word-aligned.
		pos = body + chunkLen + chunkLen%2
	}

	return nil, fmt.Errorf("%w: no data chunk", ErrBadFormat)
}

func decodeData(data []byte, channels, sampleRate int) (*audio.Buffer, error) {
	blockAlign := channels * 2
	frames := len(data) / blockAlign

	chans := make([][]float64, channels)
	for ch := range chans {
		chans[ch] = make([]float64, frames)
	}

	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			raw := int16(binary.LittleEndian.Uint16(data[i*blockAlign+ch*2:]))
			chans[ch][i] = dequantize(raw)
		}
	}

	buf, err := audio.New(sampleRate, chans)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	return buf, nil
}

// quantize clamps a float sample to [-1, 1] and scales it to int16 range.
// The asymmetric scale keeps -1 at -32768 and +1 at 32767.
func quantize(v float64) int16 {
	if v < -1 {
		v = -1
	} else if v > 1 {
		v = 1
	}
	if v < 0 {
		return int16(v * 32768)
	}
	return int16(v * 32767)
}

// dequantize is the inverse of quantize up to 16-bit quantization error.
func dequantize(v int16) float64 {
	if v < 0 {
		return float64(v) / 32768
	}
	return float64(v) / 32767
}

func writeU16(out *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	out.Write(b[:])
}

func writeU32(out *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	out.Write(b[:])
}
