package core

import "math"

// TwoPi is one full oscillator turn in radians.
const TwoPi = 2 * math.Pi

// PhaseIncrement returns the per-sample phase advance in radians of an
// oscillator running at freqHz. It returns 0 for an invalid sample rate.
func PhaseIncrement(freqHz, sampleRate float64) float64 {
	if !ValidSampleRate(sampleRate) {
		return 0
	}
	return TwoPi * freqHz / sampleRate
}

// WrapPhase maps phase into [0, 2π). Non-finite input yields 0.
func WrapPhase(phase float64) float64 {
	if !IsFinite(phase) {
		return 0
	}
	if phase >= 0 && phase < TwoPi {
		return phase
	}
	phase = math.Mod(phase, TwoPi)
	if phase < 0 {
		phase += TwoPi
	}
	// Mod of a tiny negative value plus 2π can round up to exactly 2π.
	if phase >= TwoPi {
		phase = 0
	}
	return phase
}
