package host

import (
	"errors"
	"io"
	"sync"

	"github.com/cwbudde/algo-rotary/dsp/buffer"
	"github.com/cwbudde/algo-rotary/dsp/core"
	"github.com/cwbudde/algo-rotary/measure/level"
)

const bytesPerSample = 4

// ErrNotPrepared is returned by StreamReader.Read before PrepareToPlay.
var ErrNotPrepared = errors.New("host: processor not prepared")

// StreamReader pulls dry frames from a Source, runs them through a Processor
// in blocks of at most the processor's MaxBlock frames, and serves the result
// as interleaved float32 little-endian PCM.
type StreamReader struct {
	mu     sync.Mutex
	proc   *Processor
	source Source

	channels int
	block    *buffer.Multi
	view     [][]float64
	packed   []float32
	meters   []level.Meter
	finished bool
}

// NewStreamReader creates a reader producing the processor's output channel
// count. The processor must be prepared before the first Read.
func NewStreamReader(proc *Processor, source Source) *StreamReader {
	channels := proc.Layout().Outputs
	blockSize := max(proc.MaxBlock(), 1)
	return &StreamReader{
		proc:     proc,
		source:   source,
		channels: channels,
		block:    buffer.New(channels, blockSize),
		view:     make([][]float64, channels),
		packed:   make([]float32, channels*blockSize),
		meters:   make([]level.Meter, channels),
	}
}

// Read implements io.Reader. It fills whole frames only and returns io.EOF
// after the source is exhausted.
func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return 0, io.EOF
	}
	if !r.proc.Prepared() {
		return 0, ErrNotPrepared
	}

	frameBytes := r.channels * bytesPerSample
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}

	blockSize := max(r.proc.MaxBlock(), 1)
	written := 0
	for frames > 0 {
		chunk := min(frames, blockSize)
		r.block.Resize(r.channels, chunk)

		n, err := r.source.Fill(r.block.Data())
		if err != nil && !errors.Is(err, io.EOF) {
			return written, err
		}
		if n > 0 {
			for c, row := range r.block.Data() {
				r.view[c] = row[:n]
			}
			r.proc.ProcessBlock(r.view)
			for c, row := range r.view {
				r.meters[c].Update(row)
			}

			r.packed = core.EnsureLen32(r.packed, n*r.channels)
			buffer.Interleave(r.packed, r.view, n)
			written += buffer.PutFloat32LE(p[written:], r.packed)
			frames -= n
		}
		if errors.Is(err, io.EOF) {
			r.finished = true
			if written == 0 {
				return 0, io.EOF
			}
			return written, nil
		}
		if n == 0 {
			break
		}
	}
	return written, nil
}

// Levels returns the output level of every channel served so far.
func (r *StreamReader) Levels() []level.Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]level.Stats, len(r.meters))
	for c := range r.meters {
		out[c] = r.meters[c].Result()
	}
	return out
}

// Close releases the processor.
func (r *StreamReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = true
	r.proc.ReleaseResources()
	return nil
}
