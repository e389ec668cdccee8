package level_test

import (
	"fmt"

	"github.com/cwbudde/algo-rotary/measure/level"
)

func ExampleMeter() {
	var m level.Meter
	m.Update([]float64{0.5, -0.5})
	m.Update([]float64{0.5, -0.5})
	s := m.Result()
	fmt.Printf("frames=%d peak=%.2f rms=%.2f\n", s.Frames, s.Peak, s.RMS)
	// Output: frames=4 peak=0.50 rms=0.50
}
