package params

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rotary/dsp/core"
)

// Parameter IDs used by the rotary engine.
const (
	IDGain  = "gain"
	IDDepth = "depth"
	IDRate  = "rate"
)

// Param describes one ranged, stepped control value.
type Param struct {
	ID      string
	Name    string
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

// DefaultLayout returns the gain, depth and rate parameters.
func DefaultLayout() []Param {
	return []Param{
		{ID: IDGain, Name: "Gain", Min: 0, Max: 1, Step: 0.01, Default: 0.5},
		{ID: IDDepth, Name: "Depth", Min: 0, Max: 1, Step: 0.01, Default: 0.5},
		{ID: IDRate, Name: "Rate", Min: 0.1, Max: 10, Step: 0.1, Default: 2},
	}
}

// Clamp limits v to [Min, Max].
func (p Param) Clamp(v float64) float64 {
	return core.Clamp(v, p.Min, p.Max)
}

// Snap clamps v and rounds it to the nearest Step counted from Min.
// A zero Step leaves the value continuous.
func (p Param) Snap(v float64) float64 {
	v = p.Clamp(v)
	if p.Step <= 0 {
		return v
	}
	steps := math.Round((v - p.Min) / p.Step)
	return p.Clamp(p.Min + steps*p.Step)
}

// Normalize maps v from [Min, Max] to [0, 1].
func (p Param) Normalize(v float64) float64 {
	return (p.Clamp(v) - p.Min) / (p.Max - p.Min)
}

// Denormalize maps n from [0, 1] to [Min, Max] and snaps the result.
func (p Param) Denormalize(n float64) float64 {
	n = core.Clamp(n, 0, 1)
	return p.Snap(p.Min + n*(p.Max-p.Min))
}

func (p Param) validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: empty parameter id", ErrInvalidLayout)
	case !core.IsFinite(p.Min) || !core.IsFinite(p.Max) || p.Min >= p.Max:
		return fmt.Errorf("%w: %s: range [%v, %v]", ErrInvalidLayout, p.ID, p.Min, p.Max)
	case !core.IsFinite(p.Step) || p.Step < 0:
		return fmt.Errorf("%w: %s: step %v", ErrInvalidLayout, p.ID, p.Step)
	case !core.IsFinite(p.Default) || p.Default < p.Min || p.Default > p.Max:
		return fmt.Errorf("%w: %s: default %v outside [%v, %v]", ErrInvalidLayout, p.ID, p.Default, p.Min, p.Max)
	}
	return nil
}
