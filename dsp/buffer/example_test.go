package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-rotary/dsp/buffer"
)

func ExampleInterleave() {
	block := buffer.FromChannels([]float64{1, 2}, []float64{-1, -2})
	packed := make([]float32, 4)
	n := buffer.Interleave(packed, block.Data(), block.Frames())
	fmt.Println(n, packed)
	// Output:
	// 2 [1 -1 2 -2]
}
