package modulation

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-rotary/dsp/core"
	"github.com/cwbudde/algo-rotary/dsp/window"
)

const (
	defaultMinRateHz = 0.05
	defaultMaxRateHz = 50.0
	defaultZeroPad   = 4
	silenceEpsilon   = 1e-12
)

var (
	// ErrEmptyInput is returned for an empty curve.
	ErrEmptyInput = errors.New("modulation: empty input")
	// ErrInvalidSampleRate is returned for a non-positive or non-finite rate.
	ErrInvalidSampleRate = errors.New("modulation: invalid sample rate")
	// ErrNoModulation is returned when the curve is constant. The Result
	// still carries the gain statistics.
	ErrNoModulation = errors.New("modulation: no modulation detected")
	// ErrLengthMismatch is returned when paired inputs differ in length.
	ErrLengthMismatch = errors.New("modulation: length mismatch")
)

// Result summarises a gain curve.
type Result struct {
	MinGain  float64
	MaxGain  float64
	MeanGain float64
	// Depth is (MaxGain-MinGain)/MaxGain, 0 for an unmodulated curve and 1
	// when the gain reaches zero.
	Depth float64
	// RateHz is the dominant modulation frequency.
	RateHz float64
	// Swing is the peak amplitude of the gain oscillation at RateHz,
	// estimated from the spectrum. A rotary engine yields gain*depth/2.
	Swing float64
	// Cycles is the number of LFO periods covered by the curve.
	Cycles float64
}

// Option configures Analyze.
type Option func(*config)

type config struct {
	minRateHz float64
	maxRateHz float64
	fftSize   int
}

// WithRateRange limits the rate search to [minHz, maxHz].
func WithRateRange(minHz, maxHz float64) Option {
	return func(cfg *config) {
		if minHz >= 0 && maxHz > minHz && core.IsFinite(maxHz) {
			cfg.minRateHz = minHz
			cfg.maxRateHz = maxHz
		}
	}
}

// WithFFTSize sets the transform length. It is rounded up to a power of two
// and never shorter than the curve.
func WithFFTSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.fftSize = n
		}
	}
}

// Envelope recovers the per-sample gain a modulator applied to dry to produce
// wet. Where |dry| is too small to divide by, the previous gain is held; a
// leading silent stretch takes the first measurable gain.
func Envelope(dry, wet []float64) ([]float64, error) {
	if len(dry) != len(wet) {
		return nil, fmt.Errorf("%w: dry %d, wet %d", ErrLengthMismatch, len(dry), len(wet))
	}
	if len(dry) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]float64, len(dry))
	first := -1
	last := 0.0
	for i := range dry {
		if math.Abs(dry[i]) > silenceEpsilon {
			last = wet[i] / dry[i]
			if first < 0 {
				first = i
			}
		}
		out[i] = last
	}
	if first > 0 {
		for i := 0; i < first; i++ {
			out[i] = out[first]
		}
	}
	return out, nil
}

// Analyze measures the gain extremes, depth and dominant rate of curve.
func Analyze(curve []float64, sampleRate float64, opts ...Option) (Result, error) {
	if len(curve) == 0 {
		return Result{}, ErrEmptyInput
	}
	if !core.ValidSampleRate(sampleRate) {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	cfg := config{minRateHz: defaultMinRateHz, maxRateHz: defaultMaxRateHz}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	res := Result{MinGain: math.Inf(1), MaxGain: math.Inf(-1)}
	sum := 0.0
	for _, v := range curve {
		res.MinGain = math.Min(res.MinGain, v)
		res.MaxGain = math.Max(res.MaxGain, v)
		sum += v
	}
	res.MeanGain = sum / float64(len(curve))

	swing := res.MaxGain - res.MinGain
	if res.MaxGain > 0 {
		res.Depth = swing / res.MaxGain
	}
	if swing <= silenceEpsilon*math.Max(1, math.Abs(res.MaxGain)) {
		res.Depth = 0
		return res, ErrNoModulation
	}

	rate, swing, err := dominantRate(curve, res.MeanGain, sampleRate, cfg)
	if err != nil {
		return res, err
	}
	res.RateHz = rate
	res.Swing = swing
	res.Cycles = rate * float64(len(curve)) / sampleRate
	return res, nil
}

// StereoCorrelation returns the Pearson correlation of two gain curves. It is
// 0 when either curve is constant.
func StereoCorrelation(left, right []float64) (float64, error) {
	if len(left) != len(right) {
		return 0, fmt.Errorf("%w: left %d, right %d", ErrLengthMismatch, len(left), len(right))
	}
	if len(left) == 0 {
		return 0, ErrEmptyInput
	}

	n := float64(len(left))
	var meanL, meanR float64
	for i := range left {
		meanL += left[i]
		meanR += right[i]
	}
	meanL /= n
	meanR /= n

	var cov, varL, varR float64
	for i := range left {
		dl := left[i] - meanL
		dr := right[i] - meanR
		cov += dl * dr
		varL += dl * dl
		varR += dr * dr
	}
	if varL == 0 || varR == 0 {
		return 0, nil
	}
	return cov / math.Sqrt(varL*varR), nil
}

func dominantRate(curve []float64, mean, sampleRate float64, cfg config) (rate, swing float64, err error) {
	fftSize := nextPowerOf2(max(cfg.fftSize, defaultZeroPad*len(curve)))

	frame := make([]float64, len(curve))
	for i, v := range curve {
		frame[i] = v - mean
	}
	cg := window.ApplyHann(frame)

	in := make([]complex128, fftSize)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, 0, fmt.Errorf("modulation: failed to create FFT plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return 0, 0, fmt.Errorf("modulation: forward FFT failed: %w", err)
	}

	binHz := sampleRate / float64(fftSize)
	maxBin := fftSize / 2
	lo := clampInt(int(math.Floor(cfg.minRateHz/binHz)), 1, maxBin-1)
	hi := clampInt(int(math.Ceil(cfg.maxRateHz/binHz)), lo, maxBin-1)

	peak := lo
	peakMag := 0.0
	for k := lo; k <= hi; k++ {
		m := magnitude(out[k])
		if m > peakMag {
			peak, peakMag = k, m
		}
	}
	if peakMag == 0 {
		return 0, 0, ErrNoModulation
	}

	p := parabolicOffset(out, peak)
	rate = (float64(peak) + p) * binHz
	if cg > 0 {
		height := peakMag - 0.25*(magnitude(out[peak-1])-magnitude(out[peak+1]))*p
		swing = 2 * height / (float64(len(curve)) * cg)
	}
	return rate, swing, nil
}

// parabolicOffset refines a peak bin from its neighbours' magnitudes.
func parabolicOffset(spec []complex128, k int) float64 {
	if k <= 0 || k+1 >= len(spec) {
		return 0
	}
	a := magnitude(spec[k-1])
	b := magnitude(spec[k])
	c := magnitude(spec[k+1])
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	return core.Clamp(0.5*(a-c)/den, -0.5, 0.5)
}

func magnitude(x complex128) float64 {
	return math.Hypot(real(x), imag(x))
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
