// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"errors"

	"github.com/avharel/vaultaudio/edit"
)

var (
	ErrInvalidSampleRate = errors.New("fx: sample rate must be positive")
	ErrNoChannels        = errors.New("fx: channel count must be positive")
)

// Stage identifies a processing stage in the chain.
type Stage int

const (
	StageEQ Stage = iota
	StageGate
	StageReverb
	StageGain
)

func (s Stage) String() string {
	switch s {
	case StageEQ:
		return "eq"
	case StageGate:
		return "gate"
	case StageReverb:
		return "reverb"
	case StageGain:
		return "gain"
	default:
		return "unknown"
	}
}

// Processor is one mono processing stage. Chains hold an independent
// Processor instance per channel so filter and envelope state never
// leaks across channels.
type Processor interface {
	Process(buf []float32)
}

// Chain is an ordered per-channel effects chain built from edit.Params.
// The stage order is a hard contract shared by live preview and offline
// render: EQ, then noise gate, then reverb, then master gain. Optional
// stages are inserted only when the matching edit predicate is true, so
// both paths agree on the chain shape by construction.
type Chain struct {
	rate     int
	channels int
	stages   []Stage
	procs    [][]Processor // [channel][stage]
}

// Build constructs a chain for a render or playback session starting at
// the trim start. Returns an error on a degenerate sample rate or
// channel count rather than silently constructing a no-op chain.
func Build(rate, channels int, p edit.Params) (*Chain, error) {
	return BuildAt(rate, channels, p, 0)
}

// BuildAt is Build with an explicit start offset (seconds past the trim
// start). Live playback uses it when resuming from pause so the fade
// envelope picks up at the playhead rather than restarting.
func BuildAt(rate, channels int, p edit.Params, startOffset float64) (*Chain, error) {
	if rate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	var stages []Stage
	if p.HasEQ() {
		stages = append(stages, StageEQ)
	}
	if p.HasGate() {
		stages = append(stages, StageGate)
	}
	if p.HasReverb() {
		stages = append(stages, StageReverb)
	}
	stages = append(stages, StageGain)

	procs := make([][]Processor, channels)
	for ch := range procs {
		procs[ch] = make([]Processor, 0, len(stages))
		for _, stage := range stages {
			proc, err := newProcessor(stage, rate, ch, p, startOffset)
			if err != nil {
				return nil, err
			}
			procs[ch] = append(procs[ch], proc)
		}
	}

	return &Chain{rate: rate, channels: channels, stages: stages, procs: procs}, nil
}

func newProcessor(stage Stage, rate, channel int, p edit.Params, startOffset float64) (Processor, error) {
	fRate := float64(rate)

	switch stage {
	case StageEQ:
		return newEQ(fRate, p.BassDB, p.MidDB, p.TrebleDB), nil
	case StageGate:
		return newGate(fRate, p.NoiseGate), nil
	case StageReverb:
		return newReverb(rate, channel, p.ReverbMix)
	default:
		return newGain(p.Gain(), fRate, p.FadeIn, p.FadeOut, p.TrimDuration(), startOffset), nil
	}
}

// SampleRate returns the rate the chain was built for.
func (c *Chain) SampleRate() int { return c.rate }

// Channels returns the channel count the chain was built for.
func (c *Chain) Channels() int { return c.channels }

// StageCount returns the number of stages in the chain.
func (c *Chain) StageCount() int { return len(c.stages) }

// Stages returns the ordered stage list.
func (c *Chain) Stages() []Stage { return c.stages }

// Process runs every channel of chans through its stage chain in place.
// This is the offline path: one call over the whole trimmed buffer.
func (c *Chain) Process(chans [][]float32) {
	for ch, buf := range chans {
		c.ProcessChannel(ch, buf)
	}
}

// ProcessChannel runs one channel's block through its stage chain in
// place. Stage state persists across calls, which is what makes the
// streaming path equivalent to the one-shot path.
func (c *Chain) ProcessChannel(ch int, buf []float32) {
	for _, proc := range c.procs[ch] {
		proc.Process(buf)
	}
}
