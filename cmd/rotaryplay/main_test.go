package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-rotary/dsp/buffer"
	"github.com/cwbudde/algo-rotary/dsp/params"
	"github.com/cwbudde/algo-rotary/host"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreSnapsFlags(t *testing.T) {
	store, err := newStore(options{gain: 1.5, depth: 0.333, rate: 20})
	require.NoError(t, err)

	p := store.Snapshot()
	assert.InDelta(t, 1.0, p.Gain, 1e-12)
	assert.InDelta(t, 0.33, p.Depth, 1e-12)
	assert.InDelta(t, 10.0, p.Rate, 1e-12)
}

func TestNewStoreRejectsNaN(t *testing.T) {
	_, err := newStore(options{gain: 0.5, depth: 0.5, rate: math.NaN()})
	assert.ErrorIs(t, err, params.ErrInvalidValue)
}

func TestOpenSourceSine(t *testing.T) {
	src, sr, closer, err := openSource(options{sampleRate: 44100, tone: 440})
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, 44100, sr)

	buf := [][]float64{make([]float64, 64), make([]float64, 64)}
	n, err := src.Fill(buf)
	require.NoError(t, err)
	assert.Equal(t, 64, n)
	assert.Equal(t, buf[0], buf[1])
}

func TestOpenSourceRawFloat32(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.f32")
	raw := make([]byte, 4*3)
	buffer.PutFloat32LE(raw, []float32{0.5, -0.5, 0.25})
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	src, sr, closer, err := openSource(options{path: path, sampleRate: 22050, rawChannels: 1})
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, 22050, sr)

	buf := [][]float64{make([]float64, 3), make([]float64, 3)}
	n, err := src.Fill(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []float64{0.5, -0.5, 0.25}, buf[0])
	assert.Equal(t, buf[0], buf[1])
}

func TestOpenSourceErrors(t *testing.T) {
	_, _, _, err := openSource(options{sampleRate: 0})
	assert.Error(t, err)

	_, _, _, err = openSource(options{path: filepath.Join(t.TempDir(), "missing.mp3")})
	assert.Error(t, err)

	_, _, _, err = openSource(options{path: "x.raw", sampleRate: 0, rawChannels: 2})
	assert.Error(t, err)
	_, _, _, err = openSource(options{path: "x.F32", sampleRate: 48000, rawChannels: 3})
	assert.Error(t, err)
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "sine 220Hz", sourceName(options{tone: 220}))
	assert.Equal(t, "a.mp3", sourceName(options{path: "a.mp3"}))
}

func TestLogLevels(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	store, err := newStore(options{gain: 0.5, depth: 0.5, rate: 2})
	require.NoError(t, err)
	proc, err := host.NewProcessor(store)
	require.NoError(t, err)
	require.NoError(t, proc.PrepareToPlay(48000, 128))

	stream := host.NewStreamReader(proc, host.NewSineSource(220, 0.5, 48000))
	_, err = stream.Read(make([]byte, 2*4*256))
	require.NoError(t, err)

	logLevels(logrus.NewEntry(logger), stream)

	var channels []int
	for _, e := range hook.AllEntries() {
		if e.Message == "Output level" {
			channels = append(channels, e.Data["channel"].(int))
			assert.Equal(t, 256, e.Data["frames"])
		}
	}
	assert.Equal(t, []int{0, 1}, channels)
}
