package params

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-rotary/dsp/core"
	"github.com/cwbudde/algo-rotary/dsp/effects/rotary"
)

var (
	// ErrUnknownParam is returned for an ID that is not part of the layout.
	ErrUnknownParam = errors.New("params: unknown parameter")
	// ErrInvalidValue is returned for NaN or infinite input.
	ErrInvalidValue = errors.New("params: invalid value")
	// ErrInvalidLayout is returned by NewStore for a malformed layout.
	ErrInvalidLayout = errors.New("params: invalid layout")
)

type slot struct {
	param Param
	bits  atomic.Uint64
}

func (s *slot) load() float64 { return math.Float64frombits(s.bits.Load()) }

func (s *slot) store(v float64) { s.bits.Store(math.Float64bits(v)) }

// Store holds the current value of every parameter in a layout.
//
// Writers and readers may run on different goroutines. Each value is stored
// atomically; a Snapshot reads the three engine values one after another, so
// it can mix values from two concurrent writes, as a host parameter tree does.
type Store struct {
	slots []*slot
	index map[string]int

	gain, depth, rate *slot
}

// NewStore creates a Store initialised to each parameter's default. An empty
// layout means DefaultLayout. The layout must contain gain, depth and rate.
func NewStore(layout ...Param) (*Store, error) {
	if len(layout) == 0 {
		layout = DefaultLayout()
	}

	s := &Store{
		slots: make([]*slot, 0, len(layout)),
		index: make(map[string]int, len(layout)),
	}
	for _, p := range layout {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := s.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidLayout, p.ID)
		}
		sl := &slot{param: p}
		sl.store(p.Default)
		s.index[p.ID] = len(s.slots)
		s.slots = append(s.slots, sl)
	}

	for _, bind := range []struct {
		id  string
		dst **slot
	}{{IDGain, &s.gain}, {IDDepth, &s.depth}, {IDRate, &s.rate}} {
		i, ok := s.index[bind.id]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidLayout, bind.id)
		}
		*bind.dst = s.slots[i]
	}
	return s, nil
}

// Layout returns a copy of the parameter descriptors in declaration order.
func (s *Store) Layout() []Param {
	out := make([]Param, len(s.slots))
	for i, sl := range s.slots {
		out[i] = sl.param
	}
	return out
}

// Param returns the descriptor for id.
func (s *Store) Param(id string) (Param, error) {
	sl, err := s.lookup(id)
	if err != nil {
		return Param{}, err
	}
	return sl.param, nil
}

// Get returns the current value of id.
func (s *Store) Get(id string) (float64, error) {
	sl, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	return sl.load(), nil
}

// Set clamps and snaps v to the parameter's range and step, stores it, and
// returns the stored value.
func (s *Store) Set(id string, v float64) (float64, error) {
	sl, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	if !core.IsFinite(v) {
		return 0, fmt.Errorf("%w: %s = %v", ErrInvalidValue, id, v)
	}
	v = sl.param.Snap(v)
	sl.store(v)
	return v, nil
}

// SetNormalized sets id from a value in [0, 1].
func (s *Store) SetNormalized(id string, n float64) (float64, error) {
	sl, err := s.lookup(id)
	if err != nil {
		return 0, err
	}
	if !core.IsFinite(n) {
		return 0, fmt.Errorf("%w: %s = %v", ErrInvalidValue, id, n)
	}
	v := sl.param.Denormalize(n)
	sl.store(v)
	return v, nil
}

// Snapshot returns the current engine controls. It does not allocate.
func (s *Store) Snapshot() rotary.Params {
	return rotary.Params{
		Gain:  s.gain.load(),
		Depth: s.depth.load(),
		Rate:  s.rate.load(),
	}
}

// Reset restores every parameter to its default.
func (s *Store) Reset() {
	for _, sl := range s.slots {
		sl.store(sl.param.Default)
	}
}

func (s *Store) lookup(id string) (*slot, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParam, id)
	}
	return s.slots[i], nil
}
