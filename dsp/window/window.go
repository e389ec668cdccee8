// Package window provides the analysis windows used by the measurement code.
package window

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

var (
	errInvalidLength    = errors.New("window: length must be > 0")
	errZeroCoherentGain = errors.New("window: coherent gain is zero")
)

// Hann returns symmetric Hann window coefficients of the given length.
// With periodic set, the DFT-even form is returned instead.
func Hann(size int, periodic bool) ([]float64, error) {
	if size <= 0 {
		return nil, errInvalidLength
	}
	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out, nil
	}
	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}
	for i := range out {
		out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/den)
	}
	return out, nil
}

// ApplyHann multiplies buf in place by a symmetric Hann window and returns
// the window's coherent gain, or 0 for an empty buf.
func ApplyHann(buf []float64) float64 {
	coeffs, err := Hann(len(buf), false)
	if err != nil {
		return 0
	}
	vecmath.MulBlockInPlace(buf, coeffs)
	cg, err := CoherentGain(coeffs)
	if err != nil {
		return 0
	}
	return cg
}

// CoherentGain returns the mean of the coefficients, the factor by which the
// window scales the amplitude of a bin-centred sinusoid.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errInvalidLength
	}
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	if sum == 0 {
		return 0, errZeroCoherentGain
	}
	return sum / float64(len(coeffs)), nil
}
