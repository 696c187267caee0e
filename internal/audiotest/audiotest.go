// SPDX-License-Identifier: EPL-2.0

// Package audiotest generates deterministic buffers and sources for
// tests across the module.
package audiotest

import (
	"io"
	"math"
)

// Buffer builds per-channel sample data from a generator function.
func Buffer(channels, length int, gen func(sample, channel int) float32) [][]float32 {
	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, length)
		for i := range data[ch] {
			data[ch][i] = gen(i, ch)
		}
	}
	return data
}

// Silence returns all-zero channel data.
func Silence(channels, length int) [][]float32 {
	return Buffer(channels, length, func(int, int) float32 { return 0 })
}

// Constant returns channel data where every sample is value.
func Constant(channels, length int, value float32) [][]float32 {
	return Buffer(channels, length, func(int, int) float32 { return value })
}

// Sine returns channel data holding a sine wave at freq Hz.
func Sine(channels, length, sampleRate int, freq float64) [][]float32 {
	return Buffer(channels, length, func(sample, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	})
}

// Ramp returns channel data rising linearly from 0 toward 1.
func Ramp(channels, length int) [][]float32 {
	return Buffer(channels, length, func(sample, _ int) float32 {
		return float32(sample) / float32(length)
	})
}

// Source replays interleaved frames generated on the fly. It implements
// audio.Source without importing it.
type Source struct {
	rate      int
	channels  int
	total     int // frames
	generated int
	gen       func(sample, channel int) float32
}

// NewSource creates a source producing total frames from gen.
func NewSource(rate, channels, total int, gen func(sample, channel int) float32) *Source {
	return &Source{rate: rate, channels: channels, total: total, gen: gen}
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.generated >= s.total {
		return 0, io.EOF
	}

	frames := len(dst) / s.channels
	if remain := s.total - s.generated; frames > remain {
		frames = remain
	}

	for f := range frames {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.gen(s.generated+f, ch)
		}
	}
	s.generated += frames

	if s.generated >= s.total {
		return frames * s.channels, io.EOF
	}
	return frames * s.channels, nil
}
