// Command rotaryplay plays a sine tone or an MP3 file through the rotary
// effect on the default audio device.
//
// Usage:
//
//	rotaryplay [flags] [file.mp3 | file.f32]
//
// Files ending in .f32 or .raw are read as interleaved 32-bit float
// little-endian PCM at -sr with -raw-channels channels.
//
// Examples:
//
//	rotaryplay -rate 6 -depth 0.8
//	rotaryplay -duration 30s song.mp3
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/cwbudde/algo-rotary/dsp/params"
	"github.com/cwbudde/algo-rotary/host"
	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
	"github.com/sirupsen/logrus"
)

const pollInterval = 50 * time.Millisecond

type options struct {
	gain, depth, rate float64
	sampleRate        int
	block             int
	rawChannels       int
	tone              float64
	duration          time.Duration
	path              string
}

func main() {
	var opts options
	flag.Float64Var(&opts.gain, "gain", 0.5, "output gain [0, 1]")
	flag.Float64Var(&opts.depth, "depth", 0.5, "modulation depth [0, 1]")
	flag.Float64Var(&opts.rate, "rate", 2, "LFO rate in Hz [0.1, 10]")
	flag.IntVar(&opts.sampleRate, "sr", 48000, "sample rate for the sine tone and raw input")
	flag.IntVar(&opts.rawChannels, "raw-channels", 2, "channel count of raw float32 input")
	flag.IntVar(&opts.block, "block", 512, "host block size in frames")
	flag.Float64Var(&opts.tone, "tone", 220, "sine tone frequency in Hz")
	flag.DurationVar(&opts.duration, "duration", 0, "stop after this long (0 plays until the input ends or Ctrl-C)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rotaryplay [flags] [file.mp3 | file.f32]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a sine tone, or the given MP3 or raw float32 file, through the rotary effect.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	opts.path = flag.Arg(0)

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	log := logrus.NewEntry(logger).WithField("cmd", "rotaryplay")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	if err := run(ctx, opts, log); err != nil {
		log.WithFields(logrus.Fields{
			"function": "main",
			"error":    err.Error(),
		}).Error("Playback failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log *logrus.Entry) error {
	src, sampleRate, closer, err := openSource(opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := newStore(opts)
	if err != nil {
		return err
	}
	snap := store.Snapshot()
	log.WithFields(logrus.Fields{
		"function": "run",
		"gain":     snap.Gain,
		"depth":    snap.Depth,
		"rate":     snap.Rate,
	}).Info("Parameters set")

	proc, err := host.NewProcessor(store, host.WithLogger(log), host.WithName("rotaryplay"))
	if err != nil {
		return err
	}
	if err := proc.PrepareToPlay(float64(sampleRate), opts.block); err != nil {
		return err
	}
	stream := host.NewStreamReader(proc, src)
	defer stream.Close()

	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: proc.Layout().Outputs,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(stream)
	defer player.Close()
	player.Play()

	log.WithFields(logrus.Fields{
		"function":     "run",
		"processor":    proc.Name(),
		"sample_rate":  sampleRate,
		"channels":     proc.Layout().Outputs,
		"tail_seconds": proc.TailLengthSeconds(),
		"accepts_midi": proc.AcceptsMIDI(),
		"source":       sourceName(opts),
	}).Info("Playback started")

	defer logLevels(log, stream)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.WithField("function", "run").Info("Playback stopped")
			return nil
		case <-ticker.C:
			if !player.IsPlaying() {
				log.WithField("function", "run").Info("Input finished")
				return playerErr(player)
			}
		}
	}
}

func logLevels(log *logrus.Entry, stream *host.StreamReader) {
	for c, s := range stream.Levels() {
		log.WithFields(logrus.Fields{
			"function": "logLevels",
			"channel":  c,
			"frames":   s.Frames,
			"peak_db":  s.Peak_dB,
			"rms_db":   s.RMS_dB,
		}).Debug("Output level")
	}
}

func playerErr(p *oto.Player) error {
	if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("player: %w", err)
	}
	return nil
}

// newStore loads the flag values into a parameter store. Values are snapped
// to the parameter ranges.
func newStore(opts options) (*params.Store, error) {
	store, err := params.NewStore()
	if err != nil {
		return nil, err
	}
	for _, kv := range []struct {
		id string
		v  float64
	}{{params.IDGain, opts.gain}, {params.IDDepth, opts.depth}, {params.IDRate, opts.rate}} {
		if _, err := store.Set(kv.id, kv.v); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// openSource returns the dry input and its sample rate. MP3 input decides the
// sample rate; the closer releases the file.
func openSource(opts options) (host.Source, int, io.Closer, error) {
	raw := isRaw(opts.path)
	if (opts.path == "" || raw) && opts.sampleRate <= 0 {
		return nil, 0, nil, fmt.Errorf("sample rate must be > 0: %d", opts.sampleRate)
	}
	if opts.path == "" {
		src := host.NewSineSource(opts.tone, 0.5, float64(opts.sampleRate))
		return src, opts.sampleRate, io.NopCloser(nil), nil
	}
	if raw && opts.rawChannels != 1 && opts.rawChannels != 2 {
		return nil, 0, nil, fmt.Errorf("raw channels must be 1 or 2: %d", opts.rawChannels)
	}

	f, err := os.Open(opts.path)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("failed to open %s: %w", opts.path, err)
	}
	if raw {
		return host.NewFloat32Source(f, opts.rawChannels), opts.sampleRate, f, nil
	}
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		_ = f.Close()
		return nil, 0, nil, fmt.Errorf("failed to decode %s: %w", opts.path, err)
	}
	// go-mp3 always emits 16-bit stereo.
	return host.NewPCMSource(dec, 2), dec.SampleRate(), f, nil
}

func isRaw(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".f32", ".raw":
		return true
	default:
		return false
	}
}

func sourceName(opts options) string {
	if opts.path == "" {
		return fmt.Sprintf("sine %gHz", opts.tone)
	}
	return opts.path
}
