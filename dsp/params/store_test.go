package params

import (
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-rotary/dsp/effects/rotary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreDefaults(t *testing.T) {
	s, err := NewStore()
	require.NoError(t, err)

	assert.Equal(t, rotary.Params{Gain: 0.5, Depth: 0.5, Rate: 2}, s.Snapshot())
	assert.Len(t, s.Layout(), 3)
}

func TestNewStoreRejectsBadLayouts(t *testing.T) {
	layout := DefaultLayout()

	_, err := NewStore(layout[0], layout[1])
	assert.ErrorIs(t, err, ErrInvalidLayout, "missing rate")

	_, err = NewStore(append(layout, layout[0])...)
	assert.ErrorIs(t, err, ErrInvalidLayout, "duplicate gain")

	broken := append([]Param(nil), layout...)
	broken[2].Default = 50
	_, err = NewStore(broken...)
	assert.ErrorIs(t, err, ErrInvalidLayout, "default outside range")
}

func TestStoreSetSnapsAndClamps(t *testing.T) {
	s, err := NewStore()
	require.NoError(t, err)

	v, err := s.Set(IDGain, 0.456)
	require.NoError(t, err)
	assert.InDelta(t, 0.46, v, 1e-12)

	v, err = s.Set(IDDepth, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = s.Set(IDRate, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, v, 1e-12)

	snap := s.Snapshot()
	assert.InDelta(t, 0.46, snap.Gain, 1e-12)
	assert.Equal(t, 1.0, snap.Depth)
	assert.InDelta(t, 0.1, snap.Rate, 1e-12)
}

func TestStoreErrors(t *testing.T) {
	s, err := NewStore()
	require.NoError(t, err)

	_, err = s.Set("speed", 1)
	assert.ErrorIs(t, err, ErrUnknownParam)

	_, err = s.Get("speed")
	assert.ErrorIs(t, err, ErrUnknownParam)

	_, err = s.Set(IDGain, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = s.SetNormalized(IDRate, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidValue)

	got, err := s.Get(IDGain)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got, "rejected writes must not change the value")
}

func TestStoreSetNormalizedAndReset(t *testing.T) {
	s, err := NewStore()
	require.NoError(t, err)

	v, err := s.SetNormalized(IDRate, 1)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, v, 1e-12)

	p, err := s.Param(IDRate)
	require.NoError(t, err)
	assert.Equal(t, "Rate", p.Name)

	s.Reset()
	assert.Equal(t, rotary.Params{Gain: 0.5, Depth: 0.5, Rate: 2}, s.Snapshot())
}

func TestStoreConcurrentAccess(t *testing.T) {
	s, err := NewStore()
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 1000 {
			_, _ = s.SetNormalized(IDDepth, float64(i%101)/100)
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			snap := s.Snapshot()
			if snap.Depth < 0 || snap.Depth > 1 {
				t.Errorf("depth %v outside [0, 1]", snap.Depth)
				return
			}
		}
	}()
	wg.Wait()
}

func TestSnapshotDoesNotAllocate(t *testing.T) {
	s, err := NewStore()
	require.NoError(t, err)

	var sink rotary.Params
	allocs := testing.AllocsPerRun(100, func() {
		sink = s.Snapshot()
	})
	assert.Zero(t, allocs)
	assert.Equal(t, 0.5, sink.Gain)
}
