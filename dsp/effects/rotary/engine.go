package rotary

import (
	"math"

	"github.com/cwbudde/algo-rotary/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Params holds the three per-block control values read by Engine.
//
// Gain is nominally in [0, 1], Depth in [0, 1] and Rate in [0.1, 10] Hz.
// Engine does not clamp; out-of-range values run through the same formula.
type Params struct {
	Gain  float64
	Depth float64
	Rate  float64
}

// Engine is the modulation kernel. The zero value is ready to use with phase 0.
//
// Prepare and Process must not be called concurrently on the same Engine.
type Engine struct {
	phase      float64
	sampleRate float64
}

// Prepare resets the oscillator phase and records sampleRate for ProcessBlock.
// Call it whenever the stream (re)starts or the sample rate changes.
func (e *Engine) Prepare(sampleRate float64) {
	e.phase = 0
	e.sampleRate = sampleRate
}

// Phase returns the current oscillator phase in radians, in [0, 2π).
func (e *Engine) Phase() float64 { return e.phase }

// SampleRate returns the sample rate recorded by the last Prepare call.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// ModGain returns the gain applied for an LFO value mod in [-1, 1].
//
// At depth 0 the result is gain; at depth 1 it sweeps [0, gain].
func ModGain(gain, depth, mod float64) float64 {
	return gain * (1 - depth + depth*(0.5*(1+mod)))
}

// Process modulates buf in place.
//
// buf is channel-major: buf[c][n] is sample n of channel c. The outer loop runs
// over channels and the inner loop over samples, with the phase advanced after
// every sample of every channel. channels and frames are clamped to the extent
// of buf; a non-positive or non-finite sampleRate makes the call a no-op.
func (e *Engine) Process(buf [][]float64, channels, frames int, gain, depth, rate, sampleRate float64) {
	if !core.ValidSampleRate(sampleRate) {
		return
	}
	channels, frames = extent(len(buf), channels, frames, func(c int) int { return len(buf[c]) })
	if channels == 0 || frames == 0 {
		return
	}

	inc, exact := increment(rate, sampleRate)

	if depth == 0 {
		for c := 0; c < channels; c++ {
			vecmath.ScaleBlockInPlace(buf[c][:frames], gain)
			e.skip(frames, inc, exact)
		}
		return
	}

	phase := e.phase
	for c := 0; c < channels; c++ {
		data := buf[c][:frames]
		for n := range data {
			lfo := math.Sin(phase)
			mod := lfo
			if c != 0 {
				mod = -lfo
			}
			data[n] *= ModGain(gain, depth, mod)
			phase = advance(phase, inc, exact)
		}
	}
	e.phase = phase
}

// ProcessFloat32 is Process for float32 host buffers. The gain is computed in
// float64 and the product rounded back to float32.
func (e *Engine) ProcessFloat32(buf [][]float32, channels, frames int, gain, depth, rate, sampleRate float64) {
	if !core.ValidSampleRate(sampleRate) {
		return
	}
	channels, frames = extent(len(buf), channels, frames, func(c int) int { return len(buf[c]) })
	if channels == 0 || frames == 0 {
		return
	}

	inc, exact := increment(rate, sampleRate)

	phase := e.phase
	for c := 0; c < channels; c++ {
		data := buf[c][:frames]
		for n := range data {
			lfo := math.Sin(phase)
			mod := lfo
			if c != 0 {
				mod = -lfo
			}
			data[n] = float32(float64(data[n]) * ModGain(gain, depth, mod))
			phase = advance(phase, inc, exact)
		}
	}
	e.phase = phase
}

// ProcessBlock runs Process over every channel and frame of buf using the
// sample rate passed to Prepare.
func (e *Engine) ProcessBlock(buf [][]float64, p Params) {
	frames := 0
	if len(buf) > 0 {
		frames = len(buf[0])
	}
	e.Process(buf, len(buf), frames, p.Gain, p.Depth, p.Rate, e.sampleRate)
}

// skip advances the phase by n steps without touching any samples.
func (e *Engine) skip(n int, inc float64, exact bool) {
	phase := e.phase
	for range n {
		phase = advance(phase, inc, exact)
	}
	e.phase = phase
}

// increment returns the per-sample phase step. exact is true when the step is
// in [0, 2π), so a single conditional subtraction keeps the phase wrapped.
// A non-finite step freezes the oscillator.
func increment(rate, sampleRate float64) (inc float64, exact bool) {
	inc = core.PhaseIncrement(rate, sampleRate)
	if !core.IsFinite(inc) {
		return 0, true
	}
	return inc, inc >= 0 && inc < core.TwoPi
}

func advance(phase, inc float64, exact bool) float64 {
	phase += inc
	if exact {
		if phase >= core.TwoPi {
			phase -= core.TwoPi
		}
		return phase
	}
	return core.WrapPhase(phase)
}

// extent clamps the requested counts to what buf can hold. The frame count is
// shared by every channel, so it is limited by the shortest processed row.
func extent(rows, channels, frames int, rowLen func(int) int) (int, int) {
	channels = min(max(channels, 0), rows)
	frames = max(frames, 0)
	for c := 0; c < channels; c++ {
		frames = min(frames, rowLen(c))
	}
	return channels, frames
}
