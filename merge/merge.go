// SPDX-License-Identifier: EPL-2.0

// Package merge concatenates decoded tracks into one buffer with a
// linear crossfade between each adjacent pair. It is independent of the
// single-track effects chain: inputs are taken as-is and only the
// overlap regions are shaped.
package merge

import (
	"errors"

	"github.com/avharel/vaultaudio/audio"
)

var (
	ErrNoInput            = errors.New("merge: no input buffers")
	ErrSampleRateMismatch = errors.New("merge: input sample rates differ")
	ErrCrossfadeTooLong   = errors.New("merge: crossfade longer than an input")
	ErrInvalidCrossfade   = errors.New("merge: crossfade must not be negative")
)

// Concatenate joins bufs in order into a single buffer. Order is the
// caller's playback order. Adjacent pairs overlap by crossfadeSeconds:
// the tail of one track ramps linearly to zero while the head of the
// next ramps up, and the overlapping contributions sum. A zero
// crossfade degenerates to pure back-to-back concatenation.
//
// All inputs must share a sample rate; mixing rates would silently
// pitch-shift, so it is rejected with ErrSampleRateMismatch and the
// caller resamples first (audio.Resample). The output channel count is
// the maximum across inputs; a narrower input contributes its last
// channel to the extra output channels, so mono spreads to all.
func Concatenate(bufs []*audio.Buffer, crossfadeSeconds float64) (*audio.Buffer, error) {
	if len(bufs) == 0 {
		return nil, ErrNoInput
	}
	if crossfadeSeconds < 0 {
		return nil, ErrInvalidCrossfade
	}

	rate := bufs[0].SampleRate()
	channels := 0
	total := 0
	for _, b := range bufs {
		if b.SampleRate() != rate {
			return nil, ErrSampleRateMismatch
		}
		if b.Channels() > channels {
			channels = b.Channels()
		}
		total += b.Len()
	}

	fade := int(crossfadeSeconds * float64(rate))
	for _, b := range bufs {
		if fade > b.Len() {
			return nil, ErrCrossfadeTooLong
		}
	}
	total -= fade * (len(bufs) - 1)

	out, err := audio.New(rate, channels, total)
	if err != nil {
		return nil, err
	}

	offset := 0
	last := len(bufs) - 1

	for k, b := range bufs {
		length := b.Len()
		fadeOutStart := length - fade

		for ch := range channels {
			srcCh := ch
			if srcCh >= b.Channels() {
				srcCh = b.Channels() - 1
			}
			src := b.Channel(srcCh)
			dst := out.Channel(ch)

			for i, s := range src {
				if fade > 0 {
					if k > 0 && i < fade {
						s *= float32(i) / float32(fade)
					}
					if k < last && i >= fadeOutStart {
						s *= 1 - float32(i-fadeOutStart)/float32(fade)
					}
				}
				// Accumulate: overlap regions sum both tracks.
				dst[offset+i] += s
			}
		}

		if k < last {
			offset += length - fade
		}
	}

	return out, nil
}
