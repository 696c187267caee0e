// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// cubic performs Catmull-Rom interpolation between y1 and y2.
// x is the fractional position in [0, 1).
func cubic(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// RateConverter reads frames from src at a fixed ratio: every output
// frame consumes ratio source frames, interpolated with a cubic spline.
// A ratio above 1 speeds playback up, below 1 slows it down. The output
// keeps the source's nominal sample rate and channel count; it is the
// caller's clock that gives the ratio its meaning (playback-rate control
// against a fixed-rate device, or sample-rate conversion when the caller
// relabels the rate).
type RateConverter struct {
	src      Source
	ratio    float64
	channels int

	// Sliding window of 4 frames around the read position:
	// window[0]=t-1, window[1]=t0, window[2]=t+1, window[3]=t+2.
	window [4][]float32
	filled [4]bool
	primed bool

	pos float64 // fractional position between window[1] and window[2]
	eof bool

	frameBuf []float32
}

// NewRateConverter wraps src with rate conversion at the given ratio.
func NewRateConverter(src Source, ratio float64) (*RateConverter, error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, ErrInvalidRatio
	}

	channels := src.Channels()
	rc := &RateConverter{
		src:      src,
		ratio:    ratio,
		channels: channels,
		frameBuf: make([]float32, channels),
	}
	for i := range rc.window {
		rc.window[i] = make([]float32, channels)
	}

	return rc, nil
}

func (rc *RateConverter) SampleRate() int { return rc.src.SampleRate() }
func (rc *RateConverter) Channels() int   { return rc.channels }
func (rc *RateConverter) Close() error    { return rc.src.Close() }

// advance shifts the window one source frame to the right.
func (rc *RateConverter) advance() error {
	copy(rc.window[0], rc.window[1])
	copy(rc.window[1], rc.window[2])
	copy(rc.window[2], rc.window[3])
	rc.filled[0], rc.filled[1], rc.filled[2] = rc.filled[1], rc.filled[2], rc.filled[3]
	rc.filled[3] = false

	if rc.eof {
		return nil
	}

	n, err := rc.src.ReadSamples(rc.frameBuf)
	if n > 0 {
		copy(rc.window[3], rc.frameBuf[:n])
		rc.filled[3] = true
	}
	if err == io.EOF {
		rc.eof = true
		return nil
	}
	return err
}

// prime fills the initial window. The first frame is duplicated into the
// t-1 slot so interpolation starts exactly on the first source frame.
func (rc *RateConverter) prime() error {
	for i := 1; i < 4; i++ {
		n, err := rc.src.ReadSamples(rc.frameBuf)
		if n > 0 {
			copy(rc.window[i], rc.frameBuf[:n])
			rc.filled[i] = true
			if i == 1 {
				copy(rc.window[0], rc.frameBuf[:n])
				rc.filled[0] = true
			}
		}
		if err == io.EOF {
			rc.eof = true
			break
		}
		if err != nil {
			return err
		}
	}
	rc.primed = true

	if !rc.filled[1] {
		return io.EOF
	}
	return nil
}

// ReadSamples produces rate-converted interleaved frames.
// len(dst) must be a multiple of the channel count.
func (rc *RateConverter) ReadSamples(dst []float32) (int, error) {
	if len(dst)%rc.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !rc.primed {
		if err := rc.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	frames := len(dst) / rc.channels

	for written < frames {
		for rc.pos >= 1.0 {
			rc.pos--
			if err := rc.advance(); err != nil {
				return written * rc.channels, err
			}
		}

		if !rc.filled[1] || (!rc.filled[2] && rc.pos > 0) {
			if written == 0 {
				return 0, io.EOF
			}
			return written * rc.channels, io.EOF
		}

		alpha := float32(rc.pos)
		for ch := range rc.channels {
			y1 := rc.window[1][ch]
			y2 := y1
			if rc.filled[2] {
				y2 = rc.window[2][ch]
			}
			y0 := y1
			if rc.filled[0] {
				y0 = rc.window[0][ch]
			}
			y3 := y2
			if rc.filled[3] {
				y3 = rc.window[3][ch]
			}
			dst[written*rc.channels+ch] = cubic(y0, y1, y2, y3, alpha)
		}

		written++
		rc.pos += rc.ratio
	}

	return written * rc.channels, nil
}

// Resample copies b into a new buffer at the target sample rate using
// cubic interpolation. Merge callers use it to reconcile inputs whose
// rates differ before concatenation.
func Resample(b *Buffer, rate int) (*Buffer, error) {
	if rate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if b == nil || b.Channels() == 0 || b.Len() == 0 {
		return nil, ErrNoSamples
	}
	if rate == b.SampleRate() {
		return b.Clone(), nil
	}

	src, err := NewBufferSource(b, 0, b.Len())
	if err != nil {
		return nil, err
	}
	rc, err := NewRateConverter(src, float64(b.SampleRate())/float64(rate))
	if err != nil {
		return nil, err
	}

	out, err := ReadAll(rc)
	if err != nil {
		return nil, err
	}
	out.rate = rate
	return out, nil
}
