package chroma

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-loop/internal/testutil"
)

func BenchmarkCompute(b *testing.B) {
	const sampleRate = 44100.0

	for _, seconds := range []int{1, 4, 16} {
		samples := testutil.ChordWave(
			[]float64{261.63, 329.63, 392.00},
			[]float64{1, 0.8, 0.6},
			sampleRate, seconds*44100,
		)
		b.Run(strconv.Itoa(seconds)+"s", func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Compute(samples, sampleRate); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
