// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/avharel/vaultaudio/audio"
)

// wavReader is the subset of gowav.Decoder the source needs, split out
// so tests can substitute a fake.
type wavReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        wavReader
	sampleRate int
	channels   int
	scale      float32
	offset     float32 // 8-bit WAV PCM is unsigned
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{Data: make([]int, len(dst))}
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	// Mirror the encoder's asymmetric quantization: negative values
	// span scale steps, non-negative span scale-1.
	for i := range n {
		v := float32(s.intBuf.Data[i]) - s.offset
		if v < 0 {
			dst[i] = v / s.scale
		} else {
			dst[i] = v / (s.scale - 1)
		}
	}

	// A short read with no error means the data chunk is exhausted.
	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	return n, err
}

// Decoder decodes RIFF/WAVE PCM streams of any chunk layout via
// go-audio/wav, which walks the chunk list instead of assuming the
// canonical 44-byte header.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("wav: reading input: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()

	scale, err := depthScale(int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrNotWavFile
	}

	var offset float32
	if dec.BitDepth == 8 {
		offset = 128
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		scale:      scale,
		offset:     offset,
	}, nil
}

func depthScale(bits int) (float32, error) {
	switch bits {
	case 8:
		return 128, nil
	case 16:
		return 32768, nil
	case 24:
		return 8388608, nil
	case 32:
		return 2147483648, nil
	default:
		return 0, fmt.Errorf("%w: %d bits", ErrUnsupportedDepth, bits)
	}
}
