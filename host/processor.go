package host

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-rotary/dsp/core"
	"github.com/cwbudde/algo-rotary/dsp/effects/rotary"
	"github.com/cwbudde/algo-rotary/dsp/params"
	"github.com/sirupsen/logrus"
)

const defaultName = "Rotary Effect"

var (
	// ErrUnsupportedLayout is returned for anything but mono or stereo with
	// matching input and output channel counts.
	ErrUnsupportedLayout = errors.New("host: unsupported channel layout")
	// ErrInvalidSampleRate is returned by PrepareToPlay.
	ErrInvalidSampleRate = errors.New("host: invalid sample rate")
	// ErrNilStore is returned when no parameter store is supplied.
	ErrNilStore = errors.New("host: nil parameter store")
)

// Layout is the main bus channel configuration.
type Layout struct {
	Inputs  int
	Outputs int
}

// Mono is the one-in, one-out layout.
func Mono() Layout { return Layout{Inputs: 1, Outputs: 1} }

// Stereo is the two-in, two-out layout.
func Stereo() Layout { return Layout{Inputs: 2, Outputs: 2} }

// SupportsLayout reports whether l is mono or stereo with equal input and
// output counts.
func SupportsLayout(l Layout) bool {
	if l.Outputs != 1 && l.Outputs != 2 {
		return false
	}
	return l.Inputs == l.Outputs
}

// Option configures a Processor.
type Option func(*Processor) error

// WithLayout selects the bus layout. The default is Stereo.
func WithLayout(l Layout) Option {
	return func(p *Processor) error {
		if !SupportsLayout(l) {
			return fmt.Errorf("%w: %d in, %d out", ErrUnsupportedLayout, l.Inputs, l.Outputs)
		}
		p.layout = l
		return nil
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *logrus.Entry) Option {
	return func(p *Processor) error {
		if log != nil {
			p.log = log
		}
		return nil
	}
}

// WithName sets the processor name.
func WithName(name string) Option {
	return func(p *Processor) error {
		if name != "" {
			p.name = name
		}
		return nil
	}
}

// Processor binds a rotary.Engine to a parameter store and a bus layout.
type Processor struct {
	name   string
	layout Layout
	store  *params.Store
	log    *logrus.Entry

	engine     rotary.Engine
	prepared   bool
	sampleRate float64
	maxBlock   int
}

// NewProcessor creates a stereo processor reading controls from store.
func NewProcessor(store *params.Store, opts ...Option) (*Processor, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	p := &Processor{
		name:   defaultName,
		layout: Stereo(),
		store:  store,
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.log = p.log.WithField("processor", p.name)
	return p, nil
}

// PrepareToPlay resets the oscillator for a stream at sampleRate delivering
// at most maxBlock frames per call.
func (p *Processor) PrepareToPlay(sampleRate float64, maxBlock int) error {
	if !core.ValidSampleRate(sampleRate) {
		p.log.WithFields(logrus.Fields{
			"function":    "PrepareToPlay",
			"sample_rate": sampleRate,
		}).Warn("Rejected sample rate")
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	p.engine.Prepare(sampleRate)
	p.sampleRate = sampleRate
	p.maxBlock = max(maxBlock, 0)
	p.prepared = true

	p.log.WithFields(logrus.Fields{
		"function":    "PrepareToPlay",
		"sample_rate": sampleRate,
		"max_block":   p.maxBlock,
		"inputs":      p.layout.Inputs,
		"outputs":     p.layout.Outputs,
	}).Debug("Processor prepared")
	return nil
}

// ReleaseResources stops processing until the next PrepareToPlay.
func (p *Processor) ReleaseResources() {
	p.prepared = false
	p.log.WithField("function", "ReleaseResources").Debug("Processor released")
}

// ProcessBlock modulates buf in place. Rows at or beyond the input count are
// cleared. It does nothing before PrepareToPlay.
func (p *Processor) ProcessBlock(buf [][]float64) {
	if !p.prepared {
		return
	}

	for c := p.layout.Inputs; c < len(buf); c++ {
		core.Zero(buf[c])
	}

	frames := 0
	if len(buf) > 0 {
		frames = len(buf[0])
	}
	ctl := p.store.Snapshot()
	p.engine.Process(buf, p.layout.Inputs, frames, ctl.Gain, ctl.Depth, ctl.Rate, p.sampleRate)
}

// Name returns the processor name.
func (p *Processor) Name() string { return p.name }

// Layout returns the bus layout.
func (p *Processor) Layout() Layout { return p.layout }

// SampleRate returns the prepared sample rate, 0 before PrepareToPlay.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// MaxBlock returns the block size passed to PrepareToPlay.
func (p *Processor) MaxBlock() int { return p.maxBlock }

// Prepared reports whether ProcessBlock will run.
func (p *Processor) Prepared() bool { return p.prepared }

// Phase returns the engine's oscillator phase.
func (p *Processor) Phase() float64 { return p.engine.Phase() }

// TailLengthSeconds is 0: the effect has no memory beyond the LFO phase.
func (p *Processor) TailLengthSeconds() float64 { return 0 }

// AcceptsMIDI is false.
func (p *Processor) AcceptsMIDI() bool { return false }
