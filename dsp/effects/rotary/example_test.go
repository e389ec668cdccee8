package rotary_test

import (
	"fmt"

	"github.com/cwbudde/algo-rotary/dsp/effects/rotary"
)

func ExampleEngine_Process() {
	var e rotary.Engine
	e.Prepare(4)

	// 1 Hz at 4 Hz sample rate: the LFO visits 0, π/2, π, 3π/2.
	buf := [][]float64{{1, 1, 1, 1}}
	e.Process(buf, 1, 4, 1, 1, 1, 4)

	fmt.Printf("%.2f %.2f %.2f %.2f\n", buf[0][0], buf[0][1], buf[0][2], buf[0][3])
	// Output:
	// 0.50 1.00 0.50 0.00
}

func ExampleModGain() {
	fmt.Printf("%.2f %.2f\n", rotary.ModGain(1, 0.5, -1), rotary.ModGain(1, 0.5, 1))
	// Output:
	// 0.50 1.00
}
