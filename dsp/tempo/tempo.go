// Package tempo estimates the tempo of a recorded loop in beats per minute
// by autocorrelating its energy envelope over a bounded lag range.
package tempo

import (
	"math"

	"github.com/cwbudde/algo-loop/dsp/core"
	"github.com/cwbudde/algo-loop/dsp/envelope"
)

// Estimate computes the energy envelope of samples and returns the dominant
// tempo in BPM, clamped to the configured search range. The result is
// deterministic for identical input.
func Estimate(samples []float64, sampleRate float64, opts ...Option) int {
	cfg := ApplyOptions(opts...)

	env, err := envelope.Extract(samples, cfg.HopSize)
	if err != nil {
		return fallbackBPM(cfg)
	}

	return fromEnvelope(env, sampleRate, cfg)
}

// FromEnvelope estimates tempo from a precomputed energy envelope. The
// envelope must have been extracted with the same hop size as configured.
func FromEnvelope(env []float64, sampleRate float64, opts ...Option) int {
	return fromEnvelope(env, sampleRate, ApplyOptions(opts...))
}

func fromEnvelope(env []float64, sampleRate float64, cfg Config) int {
	minLag := bpmToLag(cfg.MaxBPM, sampleRate, cfg.HopSize)
	maxLag := bpmToLag(cfg.MinBPM, sampleRate, cfg.HopSize)
	if minLag < 1 {
		minLag = 1
	}

	// Too little material for even the shortest candidate period.
	if len(env) < minLag+1 || minLag >= maxLag {
		return fallbackBPM(cfg)
	}

	bestLag := -1
	bestScore := math.Inf(-1)

	for lag := minLag; lag < maxLag; lag++ {
		pairs := len(env) - lag
		if pairs < 1 {
			break
		}

		// Unbiased mean product so long lags are not penalized for
		// having fewer overlapping pairs.
		sum := 0.0
		for i := 0; i < pairs; i++ {
			sum += env[i] * env[i+lag]
		}
		score := sum / float64(pairs)

		// Strict comparison keeps the lowest lag on ties.
		if score > bestScore {
			bestScore = score
			bestLag = lag
		}
	}

	if bestLag < 1 {
		return fallbackBPM(cfg)
	}

	bpm := int(math.Round(60 * sampleRate / (float64(cfg.HopSize) * float64(bestLag))))
	return core.ClampInt(bpm, int(cfg.MinBPM), int(cfg.MaxBPM))
}

func bpmToLag(bpm, sampleRate float64, hopSize int) int {
	return int(math.Round(60 * sampleRate / (float64(hopSize) * bpm)))
}

// fallbackBPM is the midpoint of the search range, reported when the
// envelope is too short to autocorrelate.
func fallbackBPM(cfg Config) int {
	return int(math.Round((cfg.MinBPM + cfg.MaxBPM) / 2))
}
