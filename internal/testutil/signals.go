// Package testutil provides deterministic PCM generators and slice
// assertions for the analysis and composition tests. Generators take a
// fixed seed or start at phase zero so failures reproduce exactly.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of a sine at freqHz, starting
// at phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	omega := 2 * math.Pi * freqHz / sampleRate
	for n := range out {
		out[n] = amplitude * math.Sin(omega*float64(n))
	}
	return out
}

// DeterministicNoise returns length samples of seeded uniform noise in
// [-amplitude, amplitude].
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, length)
	for n := range out {
		out[n] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse returns length zeros with a single unit sample at pos. An
// out-of-range pos yields all zeros.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for n := range out {
		out[n] = value
	}
	return out
}

// Ones returns n samples of 1.0.
func Ones(n int) []float64 {
	return DC(1, n)
}
