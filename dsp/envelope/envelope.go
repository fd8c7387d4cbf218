// Package envelope reduces a PCM channel to a coarse energy time series,
// one value per fixed-size hop. The envelope is the input to tempo
// estimation by autocorrelation.
package envelope

import "fmt"

// DefaultHopSize is the hop used for standard-resolution envelopes.
const DefaultHopSize = 512

// FastHopSize trades resolution for speed in coarse tempo passes.
const FastHopSize = 2048

// Extract computes the rectified average energy per hop: the mean absolute
// sample value over each hop's samples. The last hop may be shorter than
// hopSize and is divided by its actual length. The result has
// ceil(len(samples)/hopSize) elements.
func Extract(samples []float64, hopSize int) ([]float64, error) {
	if hopSize <= 0 {
		return nil, fmt.Errorf("envelope: hop size must be > 0: %d", hopSize)
	}
	if len(samples) == 0 {
		return nil, nil
	}

	n := len(samples)
	hops := (n + hopSize - 1) / hopSize
	out := make([]float64, hops)

	for h := 0; h < hops; h++ {
		start := h * hopSize
		end := start + hopSize
		if end > n {
			end = n
		}

		sum := 0.0
		for _, v := range samples[start:end] {
			if v < 0 {
				sum -= v
			} else {
				sum += v
			}
		}
		out[h] = sum / float64(end-start)
	}

	return out, nil
}
