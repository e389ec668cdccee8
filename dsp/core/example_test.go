package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-rotary/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(core.WithSampleRate(44100))
	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)
	// Output:
	// sampleRate=44100 blockSize=512 channels=2
}

func ExampleWrapPhase() {
	fmt.Printf("%.2f\n", core.WrapPhase(core.TwoPi+0.5))
	// Output:
	// 0.50
}
