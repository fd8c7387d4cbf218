package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-loop/internal/testutil"
)

// naiveDFTMagnitudes is the textbook O(n^2) reference implementation.
func naiveDFTMagnitudes(frame []float64, fftSize int) []float64 {
	half := fftSize/2 + 1
	out := make([]float64, half)
	for k := 0; k < half; k++ {
		var re, im float64
		for n, x := range frame {
			phase := -2 * math.Pi * float64(k) * float64(n) / float64(fftSize)
			re += x * math.Cos(phase)
			im += x * math.Sin(phase)
		}
		out[k] = math.Sqrt(re*re + im*im)
	}
	return out
}

func TestNewTransformerValidation(t *testing.T) {
	if _, err := NewTransformer(0); err == nil {
		t.Error("expected error for frame size 0")
	}
	if _, err := NewTransformer(-1); err == nil {
		t.Error("expected error for negative frame size")
	}
}

func TestTransformerSizes(t *testing.T) {
	tr, err := NewTransformer(2048)
	if err != nil {
		t.Fatalf("NewTransformer: %v", err)
	}
	if tr.FFTSize() != 2048 {
		t.Errorf("FFTSize = %d, want 2048", tr.FFTSize())
	}
	if tr.BinCount() != 1025 {
		t.Errorf("BinCount = %d, want 1025", tr.BinCount())
	}

	tr, err = NewTransformer(3000)
	if err != nil {
		t.Fatalf("NewTransformer: %v", err)
	}
	if tr.FFTSize() != 4096 {
		t.Errorf("FFTSize = %d, want 4096 for frame size 3000", tr.FFTSize())
	}
}

func TestMagnitudesMatchNaiveDFT(t *testing.T) {
	const frameSize = 256

	tr, err := NewTransformer(frameSize)
	if err != nil {
		t.Fatalf("NewTransformer: %v", err)
	}

	frame := testutil.DeterministicNoise(11, 1.0, frameSize)

	got, err := tr.Magnitudes(frame)
	if err != nil {
		t.Fatalf("Magnitudes: %v", err)
	}

	want := naiveDFTMagnitudes(frame, tr.FFTSize())
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-8)
}

func TestMagnitudesSinePeak(t *testing.T) {
	const (
		frameSize  = 2048
		sampleRate = 44100.0
	)

	tr, err := NewTransformer(frameSize)
	if err != nil {
		t.Fatalf("NewTransformer: %v", err)
	}

	// Pick a frequency exactly on bin 100 so there is no leakage.
	freq := tr.BinFrequency(100, sampleRate)
	frame := testutil.DeterministicSine(freq, sampleRate, 1.0, frameSize)

	mags, err := tr.Magnitudes(frame)
	if err != nil {
		t.Fatalf("Magnitudes: %v", err)
	}

	peak := 0
	for i, m := range mags {
		if m > mags[peak] {
			peak = i
		}
	}
	if peak != 100 {
		t.Errorf("peak at bin %d, want 100", peak)
	}

	// Full-scale sine on an exact bin has magnitude N/2.
	if math.Abs(mags[100]-frameSize/2) > 1e-6*frameSize {
		t.Errorf("peak magnitude = %g, want %g", mags[100], float64(frameSize/2))
	}
}

func TestMagnitudesShortFrameZeroPadded(t *testing.T) {
	tr, err := NewTransformer(64)
	if err != nil {
		t.Fatalf("NewTransformer: %v", err)
	}

	got, err := tr.Magnitudes(testutil.Impulse(16, 0))
	if err != nil {
		t.Fatalf("Magnitudes: %v", err)
	}

	// An impulse has a flat magnitude spectrum regardless of padding.
	for i, m := range got {
		if math.Abs(m-1) > 1e-9 {
			t.Errorf("bin %d: got %v, want 1", i, m)
		}
	}
}

func TestMagnitudesOversizedFrameRejected(t *testing.T) {
	tr, err := NewTransformer(64)
	if err != nil {
		t.Fatalf("NewTransformer: %v", err)
	}
	if _, err := tr.Magnitudes(make([]float64, 65)); err == nil {
		t.Error("expected error for oversized frame")
	}
}
