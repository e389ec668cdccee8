// Package rotary provides a stereo rotary/tremolo amplitude-modulation kernel.
//
// Engine applies a sinusoidal LFO to the gain of a planar multi-channel block.
// Channel 0 follows the LFO, every other channel follows its inverse, which
// sweeps the signal between the left and right outputs. A single phase
// accumulator is shared by all channels and advanced once per processed
// (channel, sample) pair, channel by channel, so the stereo offset and the
// phase carried into the next block depend on the block layout.
//
// Processing is allocation-free and never blocks. Invalid sample rates turn a
// call into a no-op rather than an error, so Engine is safe to drive from an
// audio callback.
package rotary
