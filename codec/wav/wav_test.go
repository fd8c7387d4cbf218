package wav

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-loop/dsp/audio"
	"github.com/cwbudde/algo-loop/internal/testutil"
)

func TestEncodeHeader(t *testing.T) {
	buf, err := audio.New(44100, [][]float64{{0, 0.5}, {0, -0.5}})
	if err != nil {
		t.Fatalf("audio.New: %v", err)
	}

	data, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	const dataBytes = 2 * 2 * 2 // frames * channels * bytes-per-sample
	if len(data) != 44+dataBytes {
		t.Fatalf("len = %d, want %d", len(data), 44+dataBytes)
	}

	if string(data[0:4]) != "RIFF" {
		t.Errorf("missing RIFF marker")
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != 36+dataBytes {
		t.Errorf("chunk size = %d, want %d", got, 36+dataBytes)
	}
	if string(data[8:12]) != "WAVE" || string(data[12:16]) != "fmt " {
		t.Errorf("missing WAVE/fmt markers")
	}
	if got := binary.LittleEndian.Uint32(data[16:20]); got != 16 {
		t.Errorf("fmt size = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint16(data[20:22]); got != 1 {
		t.Errorf("format code = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 2 {
		t.Errorf("channels = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 44100 {
		t.Errorf("sample rate = %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 44100*2*2 {
		t.Errorf("byte rate = %d, want %d", got, 44100*2*2)
	}
	if got := binary.LittleEndian.Uint16(data[32:34]); got != 4 {
		t.Errorf("block align = %d, want 4", got)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if string(data[36:40]) != "data" {
		t.Errorf("missing data marker")
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != dataBytes {
		t.Errorf("data bytes = %d, want %d", got, dataBytes)
	}
}

func TestQuantizeExtremes(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{-1, -32768},
		{1, 32767},
		{-2, -32768}, // clamped
		{2, 32767},   // clamped
		{0, 0},
	}

	for _, tt := range tests {
		if got := quantize(tt.in); got != tt.want {
			t.Errorf("quantize(%g) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	const sampleRate = 44100

	left := testutil.DeterministicSine(440, sampleRate, 0.8, 4096)
	right := testutil.DeterministicNoise(9, 0.5, 4096)

	buf, err := audio.New(sampleRate, [][]float64{left, right})
	if err != nil {
		t.Fatalf("audio.New: %v", err)
	}

	data, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.SampleRate() != sampleRate || got.Channels() != 2 || got.Frames() != 4096 {
		t.Fatalf("decoded shape %d Hz %d ch %d frames", got.SampleRate(), got.Channels(), got.Frames())
	}

	const quantizationError = 1.0 / 32767
	for ch := 0; ch < 2; ch++ {
		want := buf.Channel(ch)
		for i, v := range got.Channel(ch) {
			if math.Abs(v-want[i]) > quantizationError {
				t.Fatalf("channel %d index %d: got %v, want %v", ch, i, v, want[i])
			}
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	inputs := map[string][]byte{
		"empty":        nil,
		"too short":    []byte("RIFF"),
		"wrong magic":  make([]byte, 64),
		"not wave":     append([]byte("RIFF\x00\x00\x00\x00JUNK"), make([]byte, 32)...),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(data)
			if !errors.Is(err, ErrBadFormat) {
				t.Errorf("Decode = %v, want ErrBadFormat", err)
			}
		})
	}
}

func TestDecodeRejectsNonPCM(t *testing.T) {
	buf, err := audio.NewMono(8000, []float64{0, 0.1})
	if err != nil {
		t.Fatalf("audio.NewMono: %v", err)
	}
	data, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Rewrite the format code to IEEE float.
	binary.LittleEndian.PutUint16(data[20:22], 3)

	if _, err := Decode(data); !errors.Is(err, ErrBadFormat) {
		t.Errorf("Decode = %v, want ErrBadFormat", err)
	}
}

func TestDecodeSkipsExtraChunks(t *testing.T) {
	buf, err := audio.NewMono(8000, []float64{0.25, -0.25})
	if err != nil {
		t.Fatalf("audio.NewMono: %v", err)
	}
	data, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Splice a LIST chunk between fmt and data.
	list := append([]byte("LIST"), 4, 0, 0, 0, 'I', 'N', 'F', 'O')
	spliced := append([]byte{}, data[:36]...)
	spliced = append(spliced, list...)
	spliced = append(spliced, data[36:]...)
	binary.LittleEndian.PutUint32(spliced[4:8], uint32(len(spliced)-8))

	got, err := Decode(spliced)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Frames() != 2 {
		t.Errorf("frames = %d, want 2", got.Frames())
	}
}
