// Command rotaryfx renders a test signal through the rotary effect offline
// and prints what the modulation did to it.
//
// Usage:
//
//	rotaryfx [flags]
//
// Examples:
//
//	rotaryfx
//	rotaryfx -rate 5 -depth 1 -channels 1
//	rotaryfx -input noise -seconds 4 -wav out.wav
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-rotary/internal/render"
	"github.com/cwbudde/algo-rotary/measure/level"
	"github.com/sirupsen/logrus"
)

func main() {
	def := render.DefaultConfig()

	gain := flag.Float64("gain", def.Gain, "output gain [0, 1]")
	depth := flag.Float64("depth", def.Depth, "modulation depth [0, 1]")
	rate := flag.Float64("rate", def.Rate, "LFO rate in Hz [0.1, 10]")
	sampleRate := flag.Float64("sr", def.SampleRate, "sample rate in Hz")
	channels := flag.Int("channels", def.Channels, "channel count (1 or 2)")
	seconds := flag.Float64("seconds", def.Seconds, "render duration in seconds")
	block := flag.Int("block", def.BlockSize, "host block size in frames")
	input := flag.String("input", string(def.Input), "dry signal: dc, sine or noise")
	tone := flag.Float64("tone", def.ToneHz, "sine input frequency in Hz")
	wavPath := flag.String("wav", "", "write the processed signal to this float32 WAV file")
	verbose := flag.Bool("v", false, "log render lifecycle")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rotaryfx [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a test signal through the rotary effect and analyses the modulation.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rotaryfx -rate 5 -depth 1 -channels 1\n")
		fmt.Fprintf(os.Stderr, "  rotaryfx -input noise -seconds 4 -wav out.wav\n")
	}
	flag.Parse()

	in, err := render.ParseInput(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if *wavPath != "" {
		if _, err := render.WAVSampleRate(*sampleRate); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	cfg := def
	cfg.Gain, cfg.Depth, cfg.Rate = *gain, *depth, *rate
	cfg.SampleRate = *sampleRate
	cfg.Channels = *channels
	cfg.Seconds = *seconds
	cfg.BlockSize = *block
	cfg.Input = in
	cfg.ToneHz = *tone

	out, err := render.Run(cfg, logrus.NewEntry(logger).WithField("cmd", "rotaryfx"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printReport(os.Stdout, out); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to write report: %v\n", err)
		os.Exit(1)
	}

	if *wavPath != "" {
		if err := writeWAV(*wavPath, out); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printReport(w io.Writer, out *render.Output) error {
	cfg := out.Config
	fmt.Fprintf(w, "input=%s sr=%g block=%d seconds=%g gain=%.2f depth=%.2f rate=%.1fHz\n\n",
		cfg.Input, cfg.SampleRate, cfg.BlockSize, cfg.Seconds,
		out.Controls.Gain, out.Controls.Depth, out.Controls.Rate)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Channel\tMin Gain\tMax Gain\tMean Gain\tDepth\tRate [Hz]\tCycles\tPeak [dB]\tRMS [dB]\tLevel [dB]\n")
	fmt.Fprintf(tw, "-------\t--------\t--------\t---------\t-----\t---------\t------\t---------\t--------\t----------\n")
	for _, r := range out.Reports {
		res := r.Result
		rate, cycles := "-", "-"
		if r.Err == nil {
			rate = fmt.Sprintf("%.4f", res.RateHz)
			cycles = fmt.Sprintf("%.2f", res.Cycles)
		}
		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\t%.4f\t%s\t%s\t%.2f\t%.2f\t%+.2f\n",
			r.Channel, res.MinGain, res.MaxGain, res.MeanGain, res.Depth, rate, cycles,
			r.Wet.Peak_dB, r.Wet.RMS_dB, level.GainDB(r.Dry, r.Wet))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(out.Reports) == 2 {
		fmt.Fprintf(w, "\nstereo correlation: %+.4f\n", out.Correlation)
	}
	_, err := fmt.Fprintf(w, "final phase: %.6f rad\n", out.FinalPhase)
	return err
}

func writeWAV(path string, out *render.Output) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return out.WriteWAV(f)
}
