// Package key estimates the musical key of a recorded loop from its
// chromagram: the dominant pitch class names the tonic, and the relative
// energy of the major versus minor third above it selects the mode.
package key

import (
	"fmt"

	"github.com/cwbudde/algo-loop/dsp/chroma"
)

// Estimate analyzes a representative prefix of the samples and returns the
// key as "<NoteName> <Mode>", one of 24 labels. The prefix length is a
// speed/accuracy tradeoff, not part of the contract.
func Estimate(samples []float64, sampleRate float64, opts ...Option) (string, error) {
	cfg := ApplyOptions(opts...)

	prefix := samples
	if cfg.AnalysisDuration > 0 {
		limit := int(cfg.AnalysisDuration * sampleRate)
		if limit > 0 && limit < len(prefix) {
			prefix = prefix[:limit]
		}
	}

	v, err := chroma.Compute(prefix, sampleRate, cfg.Chroma...)
	if err != nil {
		return "", fmt.Errorf("key: %w", err)
	}

	return FromChroma(v), nil
}

// FromChroma classifies a chromagram directly. The dominant pitch class is
// the tonic; the mode is Major when the major-third bin is strictly greater
// than the minor-third bin, Minor otherwise.
func FromChroma(v chroma.Vector) string {
	dominant, _ := v.Max()

	major := v[(dominant+4)%chroma.Bins]
	minor := v[(dominant+3)%chroma.Bins]

	mode := "Minor"
	if major > minor {
		mode = "Major"
	}

	return chroma.NoteName(dominant) + " " + mode
}
