// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// Source is a pull-based stream of interleaved float32 samples in [-1, 1].
// Decoders and processing stages implement it so they can be chained.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples and returns
	// the number of float32 values written (not frames). n == 0 with
	// err == io.EOF means the stream is finished.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases any resources held by the source.
	Close() error
}

// ReadAll drains src into a Buffer, deinterleaving as it goes.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	buf := make([]float32, 4096*channels)
	interleaved := make([]float32, 0, 8192*channels)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			interleaved = append(interleaved, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	frames := len(interleaved) / channels
	if frames == 0 {
		return nil, ErrNoSamples
	}

	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, frames)
	}
	for f := range frames {
		for ch := range channels {
			data[ch][f] = interleaved[f*channels+ch]
		}
	}

	return FromChannels(src.SampleRate(), data)
}

// bufferSource streams a frame range of a Buffer as interleaved samples.
type bufferSource struct {
	buf   *Buffer
	frame int
	end   int
}

// NewBufferSource returns a Source reading frames [start, end) of buf.
// Used by live playback to stream the trim range without copying it.
func NewBufferSource(buf *Buffer, start, end int) (Source, error) {
	if buf == nil || buf.Channels() == 0 || buf.Len() == 0 {
		return nil, ErrNoSamples
	}
	if start < 0 {
		start = 0
	}
	if end > buf.Len() {
		end = buf.Len()
	}
	if end-start <= 0 {
		return nil, ErrInvalidRange
	}

	return &bufferSource{buf: buf, frame: start, end: end}, nil
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate() }
func (s *bufferSource) Channels() int   { return s.buf.Channels() }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.frame >= s.end {
		return 0, io.EOF
	}

	frames := len(dst) / channels
	if remain := s.end - s.frame; frames > remain {
		frames = remain
	}

	for f := range frames {
		for ch := range channels {
			dst[f*channels+ch] = s.buf.data[ch][s.frame+f]
		}
	}
	s.frame += frames

	if s.frame >= s.end {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}
