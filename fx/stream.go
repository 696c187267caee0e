// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"github.com/avharel/vaultaudio/audio"
)

// chainSource pulls interleaved frames from an upstream source and runs
// them through the chain block by block. Live playback reads from one of
// these; the offline renderer calls Chain.Process over a whole buffer
// instead, with identical results because stage state is sequential
// either way.
type chainSource struct {
	src   audio.Source
	chain *Chain

	planar [][]float32
}

// Stream wraps src with the chain. src must match the channel count the
// chain was built for.
func (c *Chain) Stream(src audio.Source) (audio.Source, error) {
	if src.Channels() != c.channels {
		return nil, ErrNoChannels
	}

	planar := make([][]float32, c.channels)
	return &chainSource{src: src, chain: c, planar: planar}, nil
}

func (s *chainSource) SampleRate() int { return s.src.SampleRate() }
func (s *chainSource) Channels() int   { return s.src.Channels() }
func (s *chainSource) Close() error    { return s.src.Close() }

func (s *chainSource) ReadSamples(dst []float32) (int, error) {
	channels := s.chain.channels
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	n, err := s.src.ReadSamples(dst)
	if n == 0 {
		return n, err
	}

	frames := n / channels

	// Deinterleave, process per channel, reinterleave.
	for ch := range s.planar {
		if cap(s.planar[ch]) < frames {
			s.planar[ch] = make([]float32, frames)
		}
		s.planar[ch] = s.planar[ch][:frames]
	}
	for f := range frames {
		for ch := range channels {
			s.planar[ch][f] = dst[f*channels+ch]
		}
	}
	for ch := range channels {
		s.chain.ProcessChannel(ch, s.planar[ch])
	}
	for f := range frames {
		for ch := range channels {
			dst[f*channels+ch] = s.planar[ch][f]
		}
	}

	return n, err
}
