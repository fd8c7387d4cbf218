package tempo_test

import (
	"fmt"

	"github.com/cwbudde/algo-loop/dsp/tempo"
)

func ExampleEstimate() {
	const sampleRate = 44100.0
	samples := make([]float64, 4*44100)

	// Short bursts every half second, i.e. 120 BPM.
	period := int(60 * sampleRate / 120)
	for start := 0; start < len(samples); start += period {
		for i := start; i < start+256 && i < len(samples); i++ {
			samples[i] = 1
		}
	}

	bpm := tempo.Estimate(samples, sampleRate)
	fmt.Println(bpm)
	// Output:
	// 120
}
