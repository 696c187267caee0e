// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/avharel/vaultaudio/audio"
)

// oggReader is the subset of oggvorbis.Reader the source needs, split
// out so tests can substitute a fake.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec      oggReader
	channels int
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// oggvorbis already yields interleaved float32; its Read counts
	// individual values, same as ours.
	n, err := s.dec.Read(dst)
	if n == 0 && err != nil {
		return 0, err
	}
	return n, err
}

// Decoder decodes Ogg Vorbis streams via jfreymuth/oggvorbis.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}

	return &source{dec: dec, channels: dec.Channels()}, nil
}
