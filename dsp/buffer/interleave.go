package buffer

import (
	"encoding/binary"
	"math"
)

// Interleave packs frames samples of src into dst as float32 frames
// (L R L R ...). It returns the number of frames written, limited by the
// capacity of dst and the length of each row.
func Interleave(dst []float32, src [][]float64, frames int) int {
	channels := len(src)
	if channels == 0 {
		return 0
	}
	frames = min(frames, len(dst)/channels)
	for _, row := range src {
		frames = min(frames, len(row))
	}
	for n := 0; n < frames; n++ {
		base := n * channels
		for c, row := range src {
			dst[base+c] = float32(row[n])
		}
	}
	return max(frames, 0)
}

// Deinterleave unpacks float32 frames from src into the rows of dst and
// returns the number of frames read.
func Deinterleave(dst [][]float64, src []float32) int {
	channels := len(dst)
	if channels == 0 {
		return 0
	}
	frames := len(src) / channels
	for _, row := range dst {
		frames = min(frames, len(row))
	}
	for n := 0; n < frames; n++ {
		base := n * channels
		for c, row := range dst {
			row[n] = float64(src[base+c])
		}
	}
	return frames
}

// DeinterleaveInt16LE unpacks signed 16-bit little-endian PCM frames with
// srcChannels channels into dst, scaling to [-1, 1). When dst has more rows
// than the source, the last source channel is repeated; extra source channels
// are dropped. It returns the number of frames read.
func DeinterleaveInt16LE(dst [][]float64, src []byte, srcChannels int) int {
	if len(dst) == 0 || srcChannels <= 0 {
		return 0
	}
	stride := 2 * srcChannels
	frames := len(src) / stride
	for _, row := range dst {
		frames = min(frames, len(row))
	}
	for n := 0; n < frames; n++ {
		base := n * stride
		for c, row := range dst {
			sc := min(c, srcChannels-1)
			v := int16(binary.LittleEndian.Uint16(src[base+2*sc:]))
			row[n] = float64(v) / 32768
		}
	}
	return frames
}

// PutFloat32LE encodes samples into dst as little-endian IEEE floats and
// returns the number of bytes written.
func PutFloat32LE(dst []byte, samples []float32) int {
	n := min(len(samples), len(dst)/4)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(samples[i]))
	}
	return n * 4
}
