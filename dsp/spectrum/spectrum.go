package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Transformer computes magnitude spectra for frames of a fixed size.
//
// A Transformer owns scratch buffers and is not safe for concurrent use;
// create one per goroutine. Construction is cheap relative to a transform.
type Transformer struct {
	frameSize int
	fftSize   int
	plan      *algofft.Plan[complex128]

	in  []complex128
	out []complex128
	re  []float64
	im  []float64
}

// NewTransformer creates a Transformer for frames of frameSize samples.
func NewTransformer(frameSize int) (*Transformer, error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("spectrum: frame size must be > 0: %d", frameSize)
	}

	fftSize := nextPowerOf2(frameSize)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	half := fftSize/2 + 1

	return &Transformer{
		frameSize: frameSize,
		fftSize:   fftSize,
		plan:      plan,
		in:        make([]complex128, fftSize),
		out:       make([]complex128, fftSize),
		re:        make([]float64, half),
		im:        make([]float64, half),
	}, nil
}

// FrameSize returns the nominal analysis frame size in samples.
func (t *Transformer) FrameSize() int { return t.frameSize }

// FFTSize returns the zero-padded transform size.
func (t *Transformer) FFTSize() int { return t.fftSize }

// BinCount returns the number of non-negative-frequency bins (FFTSize/2+1).
func (t *Transformer) BinCount() int { return t.fftSize/2 + 1 }

// BinFrequency returns the center frequency in Hz of bin k at the given
// sample rate.
func (t *Transformer) BinFrequency(k int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(t.fftSize)
}

// Magnitudes computes sqrt(re^2+im^2) for each non-negative-frequency bin
// of the frame's DFT. Frames shorter than the frame size are zero-padded;
// longer frames are rejected. The result has BinCount elements and is newly
// allocated on every call.
func (t *Transformer) Magnitudes(frame []float64) ([]float64, error) {
	if len(frame) > t.frameSize {
		return nil, fmt.Errorf("spectrum: frame has %d samples, transformer expects at most %d", len(frame), t.frameSize)
	}

	for i := range t.in {
		if i < len(frame) {
			t.in[i] = complex(frame[i], 0)
		} else {
			t.in[i] = 0
		}
	}

	if err := t.plan.Forward(t.out, t.in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	half := t.BinCount()
	for i := 0; i < half; i++ {
		t.re[i] = real(t.out[i])
		t.im[i] = imag(t.out[i])
	}

	mags := make([]float64, half)
	vecmath.Magnitude(mags, t.re, t.im)
	return mags, nil
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
