package host

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/cwbudde/algo-rotary/dsp/buffer"
	"github.com/cwbudde/algo-rotary/dsp/core"
)

// Source produces dry input for a StreamReader.
//
// Fill writes up to len(buf[0]) frames into every row of buf and returns the
// number of frames written. It returns io.EOF once no more frames follow.
type Source interface {
	Fill(buf [][]float64) (int, error)
}

// SineSource is an endless sine tone, identical on every channel.
type SineSource struct {
	amplitude float64
	inc       float64
	phase     float64
}

// NewSineSource creates a sine tone at freqHz.
func NewSineSource(freqHz, amplitude, sampleRate float64) *SineSource {
	return &SineSource{
		amplitude: amplitude,
		inc:       core.PhaseIncrement(freqHz, sampleRate),
	}
}

// Fill implements Source.
func (s *SineSource) Fill(buf [][]float64) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	frames := len(buf[0])
	for _, row := range buf[1:] {
		frames = min(frames, len(row))
	}
	for n := 0; n < frames; n++ {
		v := s.amplitude * math.Sin(s.phase)
		for _, row := range buf {
			row[n] = v
		}
		s.phase = core.WrapPhase(s.phase + s.inc)
	}
	return frames, nil
}

// PCMSource reads interleaved signed 16-bit little-endian PCM, the output
// format of common decoders.
type PCMSource struct {
	r        io.Reader
	channels int
	raw      []byte
	done     bool
}

// NewPCMSource wraps r, which yields frames of channels samples.
func NewPCMSource(r io.Reader, channels int) *PCMSource {
	return &PCMSource{r: r, channels: max(channels, 1)}
}

// Fill implements Source. A trailing partial frame is dropped.
func (s *PCMSource) Fill(buf [][]float64) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(buf) == 0 {
		return 0, nil
	}

	frames := len(buf[0])
	stride := 2 * s.channels
	need := frames * stride
	if cap(s.raw) < need {
		s.raw = make([]byte, need)
	}
	s.raw = s.raw[:need]

	n, err := io.ReadFull(s.r, s.raw)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.done = true
	case err != nil:
		return 0, err
	}

	got := buffer.DeinterleaveInt16LE(buf, s.raw[:n], s.channels)
	if got == 0 && s.done {
		return 0, io.EOF
	}
	return got, nil
}

// Float32Source reads interleaved 32-bit float little-endian PCM, the raw
// format written by most DAWs and by StreamReader itself. Rows of the
// destination beyond the source channel count repeat the last channel.
type Float32Source struct {
	r        io.Reader
	channels int
	raw      []byte
	samples  []float32
	done     bool
}

// NewFloat32Source wraps r, which yields frames of channels samples.
func NewFloat32Source(r io.Reader, channels int) *Float32Source {
	return &Float32Source{r: r, channels: max(channels, 1)}
}

// Fill implements Source. A trailing partial frame is dropped.
func (s *Float32Source) Fill(buf [][]float64) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(buf) == 0 {
		return 0, nil
	}

	frames := len(buf[0])
	for _, row := range buf[1:] {
		frames = min(frames, len(row))
	}
	need := frames * s.channels * bytesPerSample
	if cap(s.raw) < need {
		s.raw = make([]byte, need)
	}
	s.raw = s.raw[:need]

	n, err := io.ReadFull(s.r, s.raw)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.done = true
	case err != nil:
		return 0, err
	}

	whole := n / (s.channels * bytesPerSample) * s.channels
	s.samples = core.EnsureLen32(s.samples, whole)
	for i := range s.samples {
		s.samples[i] = math.Float32frombits(binary.LittleEndian.Uint32(s.raw[i*bytesPerSample:]))
	}

	direct := min(len(buf), s.channels)
	var got int
	if direct == s.channels {
		got = buffer.Deinterleave(buf[:direct], s.samples)
	} else {
		// More source channels than rows: keep the leading ones.
		got = whole / s.channels
		for c, row := range buf {
			for f := 0; f < got; f++ {
				row[f] = float64(s.samples[f*s.channels+c])
			}
		}
	}
	for c := direct; c < len(buf); c++ {
		copy(buf[c][:got], buf[direct-1][:got])
	}

	if got == 0 && s.done {
		return 0, io.EOF
	}
	return got, nil
}
