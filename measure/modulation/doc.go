// Package modulation measures amplitude modulation applied to a signal.
//
// The typical workflow feeds a known input through a modulation effect,
// recovers the applied gain curve with Envelope, and summarises it with
// Analyze: gain extremes, modulation depth, and the LFO rate estimated from
// the spectrum of the curve. StereoCorrelation compares the curves of two
// channels; a value near -1 indicates the channels are modulated in
// opposition.
package modulation
