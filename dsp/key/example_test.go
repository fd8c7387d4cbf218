package key_test

import (
	"fmt"

	"github.com/cwbudde/algo-loop/dsp/chroma"
	"github.com/cwbudde/algo-loop/dsp/key"
)

func ExampleFromChroma() {
	var v chroma.Vector
	v[9] = 1.0 // A
	v[0] = 0.8 // C
	v[4] = 0.6 // E

	fmt.Println(key.FromChroma(v))
	// Output:
	// A Minor
}
