package testutil

import "math"

// ChordWave generates a sum of sine partials, one per frequency, with the
// given per-partial amplitudes. freqs and amps must have equal length.
func ChordWave(freqs, amps []float64, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for p, f := range freqs {
		step := 2 * math.Pi * f / sampleRate
		for i := range out {
			out[i] += amps[p] * math.Sin(step*float64(i))
		}
	}
	return out
}
