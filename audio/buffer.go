// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// Buffer holds decoded audio as one float32 sample slice per channel.
// All channels share the same length and sample rate. Samples are
// nominally in [-1, 1]; intermediate processing may exceed that range
// and is clamped at encode time.
//
// A Buffer is replaced wholesale when an edit is committed, never
// mutated in place. This keeps reset-to-original semantics trivial:
// the caller re-decodes the untouched source bytes.
type Buffer struct {
	rate int
	data [][]float32
}

// New allocates a zeroed buffer with the given sample rate, channel
// count and per-channel length.
func New(rate, channels, length int) (*Buffer, error) {
	if rate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if channels <= 0 {
		return nil, ErrNoChannels
	}
	if length <= 0 {
		return nil, ErrNoSamples
	}

	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, length)
	}

	return &Buffer{rate: rate, data: data}, nil
}

// FromChannels wraps existing per-channel sample slices. All slices
// must be non-empty and of equal length. The slices are not copied.
func FromChannels(rate int, channels [][]float32) (*Buffer, error) {
	if rate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	length := len(channels[0])
	if length == 0 {
		return nil, ErrNoSamples
	}
	for _, ch := range channels[1:] {
		if len(ch) != length {
			return nil, ErrChannelLengthMismatch
		}
	}

	return &Buffer{rate: rate, data: channels}, nil
}

// SampleRate returns the buffer's sample rate in Hz.
func (b *Buffer) SampleRate() int { return b.rate }

// Channels returns the channel count.
func (b *Buffer) Channels() int { return len(b.data) }

// Len returns the number of samples per channel.
func (b *Buffer) Len() int { return len(b.data[0]) }

// Duration returns the buffer duration in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Len()) / float64(b.rate)
}

// Channel returns the sample slice for channel ch. The slice is shared
// with the buffer; treat it as read-only unless you own the buffer.
func (b *Buffer) Channel(ch int) []float32 { return b.data[ch] }

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	data := make([][]float32, len(b.data))
	for ch := range b.data {
		data[ch] = make([]float32, len(b.data[ch]))
		copy(data[ch], b.data[ch])
	}

	return &Buffer{rate: b.rate, data: data}
}

// Trim copies the [start, end) time range of b into a freshly allocated
// buffer. Times are in seconds and converted to sample indices by
// truncation. Returns ErrInvalidRange when the resulting sample count
// is not positive.
//
// This is the destructive-edit path: committing a trim replaces the
// working buffer with the returned one, and the caller resets its trim
// range to the new full duration.
func Trim(b *Buffer, start, end float64) (*Buffer, error) {
	if b == nil || b.Channels() == 0 || b.Len() == 0 {
		return nil, ErrNoSamples
	}

	startSample := int(math.Floor(start * float64(b.rate)))
	endSample := int(math.Floor(end * float64(b.rate)))

	if startSample < 0 {
		startSample = 0
	}
	if endSample > b.Len() {
		endSample = b.Len()
	}
	if endSample-startSample <= 0 {
		return nil, ErrInvalidRange
	}

	data := make([][]float32, b.Channels())
	for ch := range data {
		data[ch] = make([]float32, endSample-startSample)
		copy(data[ch], b.data[ch][startSample:endSample])
	}

	return &Buffer{rate: b.rate, data: data}, nil
}
