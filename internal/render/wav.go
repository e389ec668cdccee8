package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrWAVSampleRate is returned for a sample rate the WAV header cannot hold.
var ErrWAVSampleRate = errors.New("render: WAV sample rate must be a positive whole number")

// WAVSampleRate returns sampleRate as a WAV header value. Fractional,
// non-positive and out-of-range rates are rejected rather than truncated.
func WAVSampleRate(sampleRate float64) (int, error) {
	if !(sampleRate > 0) || sampleRate != math.Trunc(sampleRate) || sampleRate > math.MaxUint32/8 {
		return 0, fmt.Errorf("%w: %v", ErrWAVSampleRate, sampleRate)
	}
	return int(sampleRate), nil
}

// WriteWAV writes the processed signal as a 32-bit float WAV.
func (o *Output) WriteWAV(w io.Writer) error {
	sr, err := WAVSampleRate(o.Config.SampleRate)
	if err != nil {
		return err
	}
	return WriteWAVFloat32(w, o.Wet, sr)
}

// WriteWAVFloat32 writes planar samples as an interleaved 32-bit float WAV.
func WriteWAVFloat32(w io.Writer, channels [][]float64, sampleRate int) error {
	_, err := w.Write(EncodeWAVFloat32LE(channels, sampleRate))
	return err
}

// EncodeWAVFloat32LE encodes planar samples as an interleaved IEEE float WAV
// file image. Rows are truncated to the shortest one.
func EncodeWAVFloat32LE(channels [][]float64, sampleRate int) []byte {
	numCh := len(channels)
	frames := 0
	if numCh > 0 {
		frames = len(channels[0])
		for _, row := range channels[1:] {
			frames = min(frames, len(row))
		}
	}

	dataSize := frames * numCh * 4
	byteRate := sampleRate * numCh * 4
	blockAlign := numCh * 4
	out := make([]byte, 44+dataSize)
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 3)
	binary.LittleEndian.PutUint16(out[22:], uint16(numCh))
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))

	pos := 44
	for n := 0; n < frames; n++ {
		for _, row := range channels {
			binary.LittleEndian.PutUint32(out[pos:], math.Float32bits(float32(row[n])))
			pos += 4
		}
	}
	return out
}
