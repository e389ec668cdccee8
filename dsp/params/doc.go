// Package params holds the host-side control values that drive the rotary
// engine: a declarative layout of ranged parameters and a lock-free Store
// that a control goroutine writes and the audio goroutine snapshots once per
// block.
package params
