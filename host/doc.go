// Package host adapts the rotary engine to an audio host.
//
// Processor mirrors a plugin lifecycle: PrepareToPlay and ReleaseResources run
// on a control goroutine, ProcessBlock runs on the audio goroutine and reads
// the current controls from a params.Store once per block. The host must not
// call PrepareToPlay or ReleaseResources while ProcessBlock is running.
//
// StreamReader turns a Processor and a Source into an io.Reader of
// interleaved float32 PCM, the pull model used by audio output libraries.
package host
