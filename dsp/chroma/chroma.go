// Package chroma folds spectral energy into 12-bin pitch-class profiles
// (chromagrams). A chromagram summarizes which of the twelve chromatic
// pitch classes carry energy, ignoring octave, and is the input to key and
// chord classification.
package chroma

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-loop/dsp/spectrum"
)

// Bins is the number of pitch classes per octave.
const Bins = 12

// noteNames maps pitch class 0..11 to note names, C-rooted.
var noteNames = [Bins]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the chromatic name of a pitch class. Values outside
// [0, 12) are folded into range first.
func NoteName(pitchClass int) string {
	return noteNames[((pitchClass%Bins)+Bins)%Bins]
}

// PitchClass maps a frequency in Hz to its chromatic pitch class, using
// A4 = 440 Hz as pitch 57 in a 0-based C-rooted numbering. Non-positive
// frequencies return -1.
func PitchClass(freq float64) int {
	if freq <= 0 {
		return -1
	}
	pitch := int(math.Round(12*math.Log2(freq/440) + 57))
	return ((pitch % Bins) + Bins) % Bins
}

// Vector is a pitch-class profile. All elements are non-negative and the
// maximum element is 1 unless the vector is entirely zero.
type Vector [Bins]float64

// Max returns the index and value of the largest element. Ties resolve to
// the lowest pitch class.
func (v Vector) Max() (int, float64) {
	idx := 0
	for i := 1; i < Bins; i++ {
		if v[i] > v[idx] {
			idx = i
		}
	}
	return idx, v[idx]
}

// IsZero reports whether every element is zero.
func (v Vector) IsZero() bool {
	for _, e := range v {
		if e != 0 {
			return false
		}
	}
	return true
}

// Compute builds a chromagram over the given samples. Each analysis frame
// is transformed to a magnitude spectrum; bins with center frequencies in
// the configured band are accumulated into their pitch-class slot. The
// result is normalized so its maximum element is 1, except for silent
// input, which yields the zero vector.
func Compute(samples []float64, sampleRate float64, opts ...Option) (Vector, error) {
	cfg := ApplyOptions(opts...)

	var v Vector
	if sampleRate <= 0 {
		return v, fmt.Errorf("chroma: sample rate must be > 0: %g", sampleRate)
	}
	if len(samples) == 0 {
		return v, nil
	}

	tr, err := spectrum.NewTransformer(cfg.FrameSize)
	if err != nil {
		return v, fmt.Errorf("chroma: %w", err)
	}

	// Map each usable spectrum bin to its pitch class once.
	binClass := make([]int, tr.BinCount())
	for k := range binClass {
		binClass[k] = -1
		f := tr.BinFrequency(k, sampleRate)
		if f < cfg.MinFreq || f > cfg.MaxFreq {
			continue
		}
		binClass[k] = PitchClass(f)
	}

	accumulate := func(frame []float64) error {
		mags, err := tr.Magnitudes(frame)
		if err != nil {
			return err
		}
		for k, pc := range binClass {
			if pc < 0 {
				continue
			}
			v[pc] += mags[k]
		}
		return nil
	}

	frames := 0
	for start := 0; start+cfg.FrameSize <= len(samples); start += cfg.HopSize {
		if err := accumulate(samples[start : start+cfg.FrameSize]); err != nil {
			return Vector{}, err
		}
		frames++
	}

	// Input shorter than one frame: analyze it zero-padded rather than
	// reporting nothing.
	if frames == 0 {
		if err := accumulate(samples); err != nil {
			return Vector{}, err
		}
	}

	if _, max := v.Max(); max > 0 {
		for i := range v {
			v[i] /= max
		}
	}

	return v, nil
}
