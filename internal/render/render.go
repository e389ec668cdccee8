// Package render runs the rotary processor offline over a generated test
// signal and measures the result.
package render

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-rotary/dsp/buffer"
	"github.com/cwbudde/algo-rotary/dsp/core"
	"github.com/cwbudde/algo-rotary/dsp/effects/rotary"
	"github.com/cwbudde/algo-rotary/dsp/params"
	"github.com/cwbudde/algo-rotary/dsp/signal"
	"github.com/cwbudde/algo-rotary/host"
	"github.com/cwbudde/algo-rotary/measure/level"
	"github.com/cwbudde/algo-rotary/measure/modulation"
	"github.com/sirupsen/logrus"
)

// Input selects the dry test signal.
type Input string

const (
	InputDC    Input = "dc"
	InputSine  Input = "sine"
	InputNoise Input = "noise"
)

// ParseInput accepts dc, sine or noise in any case.
func ParseInput(s string) (Input, error) {
	switch in := Input(strings.ToLower(strings.TrimSpace(s))); in {
	case InputDC, InputSine, InputNoise:
		return in, nil
	default:
		return "", fmt.Errorf("render: unknown input %q", s)
	}
}

// Config describes one render.
type Config struct {
	SampleRate float64
	BlockSize  int
	Channels   int
	Seconds    float64
	Input      Input
	ToneHz     float64
	Seed       int64

	Gain  float64
	Depth float64
	Rate  float64
}

// DefaultConfig renders two seconds of stereo DC at the parameter defaults.
func DefaultConfig() Config {
	pc := core.DefaultProcessorConfig()
	return Config{
		SampleRate: pc.SampleRate,
		BlockSize:  pc.BlockSize,
		Channels:   pc.Channels,
		Seconds:    2,
		Input:      InputDC,
		ToneHz:     440,
		Seed:       1,
		Gain:       0.5,
		Depth:      0.5,
		Rate:       2,
	}
}

// ChannelReport is the analysis of one output channel.
type ChannelReport struct {
	Channel int
	Dry     level.Stats
	Wet     level.Stats
	Result  modulation.Result
	// Err is set when the channel could not be analysed, e.g.
	// modulation.ErrNoModulation at depth 0.
	Err error
}

// Output holds the rendered audio and its analysis.
type Output struct {
	Config      Config
	Controls    rotary.Params // after snapping to the parameter steps
	Dry         [][]float64
	Wet         [][]float64
	FinalPhase  float64
	Reports     []ChannelReport
	Correlation float64 // left/right gain-curve correlation, 0 for mono
}

// Run renders cfg. log receives lifecycle events and may be nil.
func Run(cfg Config, log *logrus.Entry) (*Output, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}

	store, err := params.NewStore()
	if err != nil {
		return nil, err
	}
	for _, kv := range []struct {
		id string
		v  float64
	}{{params.IDGain, cfg.Gain}, {params.IDDepth, cfg.Depth}, {params.IDRate, cfg.Rate}} {
		if _, err := store.Set(kv.id, kv.v); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
	}

	layout := host.Stereo()
	if cfg.Channels == 1 {
		layout = host.Mono()
	}
	proc, err := host.NewProcessor(store, host.WithLayout(layout), host.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := proc.PrepareToPlay(cfg.SampleRate, cfg.BlockSize); err != nil {
		return nil, err
	}
	defer proc.ReleaseResources()

	frames := int(math.Round(cfg.SampleRate * cfg.Seconds))
	mono, err := generate(cfg, frames)
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, cfg.Channels)
	rows[0] = mono
	for c := 1; c < len(rows); c++ {
		rows[c] = append([]float64(nil), mono...)
	}
	dry := buffer.FromChannels(rows...)
	wet := dry.Copy()

	// The wet copy is processed through pooled host-sized blocks.
	meters := make([]level.Meter, cfg.Channels)
	pool := buffer.NewPool()
	for start := 0; start < frames; start += cfg.BlockSize {
		n := min(cfg.BlockSize, frames-start)
		block := pool.Get(cfg.Channels, n)
		for c := range block.Data() {
			copy(block.Channel(c), wet.Channel(c)[start:start+n])
		}
		proc.ProcessBlock(block.Data())
		for c := range block.Data() {
			copy(wet.Channel(c)[start:start+n], block.Channel(c))
			meters[c].Update(block.Channel(c))
		}
		pool.Put(block)
	}

	out := &Output{
		Config:   cfg,
		Controls: store.Snapshot(),
		Dry:      dry.Data(),
		Wet:      wet.Data(),
	}
	out.FinalPhase = proc.Phase()

	log.WithFields(logrus.Fields{
		"function": "Run",
		"frames":   frames,
		"channels": cfg.Channels,
		"input":    string(cfg.Input),
	}).Debug("Render complete")

	if err := analyze(out); err != nil {
		return nil, err
	}
	for c := range out.Reports {
		out.Reports[c].Dry = level.Measure(out.Dry[c])
		out.Reports[c].Wet = meters[c].Result()
	}
	return out, nil
}

func validate(cfg Config) error {
	switch {
	case !core.ValidSampleRate(cfg.SampleRate):
		return fmt.Errorf("render: sample rate must be > 0 and finite: %v", cfg.SampleRate)
	case cfg.BlockSize <= 0:
		return fmt.Errorf("render: block size must be > 0: %d", cfg.BlockSize)
	case cfg.Channels != 1 && cfg.Channels != 2:
		return fmt.Errorf("render: channels must be 1 or 2: %d", cfg.Channels)
	case !(cfg.Seconds > 0) || !core.IsFinite(cfg.Seconds):
		return fmt.Errorf("render: duration must be > 0: %v", cfg.Seconds)
	}
	if _, err := ParseInput(string(cfg.Input)); err != nil {
		return err
	}
	return nil
}

func generate(cfg Config, frames int) ([]float64, error) {
	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(cfg.SampleRate)},
		signal.WithSeed(cfg.Seed),
	)
	switch cfg.Input {
	case InputSine:
		return g.Sine(cfg.ToneHz, 0.5, frames)
	case InputNoise:
		return g.WhiteNoise(0.5, frames)
	default:
		return g.DC(1, frames)
	}
}

func analyze(out *Output) error {
	curves := make([][]float64, len(out.Wet))
	for c := range out.Wet {
		curve, err := modulation.Envelope(out.Dry[c], out.Wet[c])
		if err != nil {
			return fmt.Errorf("render: channel %d: %w", c, err)
		}
		curves[c] = curve

		res, err := modulation.Analyze(curve, out.Config.SampleRate)
		out.Reports = append(out.Reports, ChannelReport{Channel: c, Result: res, Err: err})
		if err != nil && !errors.Is(err, modulation.ErrNoModulation) {
			return fmt.Errorf("render: channel %d: %w", c, err)
		}
	}

	if len(curves) == 2 {
		r, err := modulation.StereoCorrelation(curves[0], curves[1])
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		out.Correlation = r
	}
	return nil
}
