// Package level meters peak and RMS levels of audio, either over a whole
// signal or incrementally across processing blocks.
package level

import (
	"math"

	"github.com/cwbudde/algo-rotary/dsp/core"
)

// Stats holds level statistics of a signal.
//
//nolint:revive
type Stats struct {
	Frames         int
	Peak           float64 // max |x|
	Peak_dB        float64
	RMS            float64
	RMS_dB         float64
	CrestFactor    float64 // peak / RMS (linear), 0 for silence
	CrestFactor_dB float64
	Energy         float64 // sum of squares
}

func silence() Stats {
	return Stats{
		Peak_dB:        math.Inf(-1),
		RMS_dB:         math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Measure computes the level statistics of x.
func Measure(x []float64) Stats {
	var m Meter
	m.Update(x)
	return m.Result()
}

// Meter accumulates level statistics block by block. The zero value is
// ready to use and Update does not allocate, so a Meter may run on the audio
// goroutine.
type Meter struct {
	n     int
	sumSq float64
	peak  float64
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		m.sumSq += x * x
		if a := math.Abs(x); a > m.peak {
			m.peak = a
		}
	}
	m.n += len(samples)
}

// Result returns the statistics of everything seen since the last Reset.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return silence()
	}

	rms := math.Sqrt(m.sumSq / float64(m.n))
	s := Stats{
		Frames:         m.n,
		Peak:           m.peak,
		Peak_dB:        core.LinearToDB(m.peak),
		RMS:            rms,
		RMS_dB:         core.LinearToDB(rms),
		CrestFactor_dB: math.Inf(-1),
		Energy:         m.sumSq,
	}
	if rms > 0 {
		s.CrestFactor = m.peak / rms
		s.CrestFactor_dB = core.LinearToDB(s.CrestFactor)
	}
	return s
}

// Reset clears the accumulated data.
func (m *Meter) Reset() {
	*m = Meter{}
}

// GainDB returns the level change from dry to wet in dB, based on RMS.
// It is -Inf when wet is silent and NaN when dry is.
func GainDB(dry, wet Stats) float64 {
	if dry.RMS == 0 {
		return math.NaN()
	}
	return core.LinearToDB(wet.RMS / dry.RMS)
}
