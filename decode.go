// SPDX-License-Identifier: EPL-2.0

package vaultaudio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/avharel/vaultaudio/audio"
	"github.com/avharel/vaultaudio/formats/aiff"
	"github.com/avharel/vaultaudio/formats/mp3"
	"github.com/avharel/vaultaudio/formats/vorbis"
	"github.com/avharel/vaultaudio/formats/wav"
)

var ErrUnknownFormat = errors.New("vaultaudio: unrecognized audio format")

// Decoder constructs a streaming Source from raw input bytes.
type Decoder interface {
	Decode(r io.Reader) (audio.Source, error)
}

// Sniffer reports whether the first bytes of a stream look like the
// format. head holds at least the first 12 bytes when available.
type Sniffer func(head []byte) bool

// Registry maps sniffers to decoders in registration order. The stored
// media's content type is deliberately ignored: decode success is the
// only gate, so detection works from the bytes alone.
type Registry struct {
	mtx     sync.Mutex
	entries []registryEntry
}

type registryEntry struct {
	format string
	sniff  Sniffer
	dec    Decoder
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a format. Later registrations are tried later, so
// generic or loose sniffers should come last.
func (r *Registry) Register(format string, sniff Sniffer, dec Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.entries = append(r.entries, registryEntry{format: format, sniff: sniff, dec: dec})
}

// Decode sniffs data and decodes it into a Buffer with the matching
// decoder. Returns ErrUnknownFormat when nothing matches.
func (r *Registry) Decode(data []byte) (*audio.Buffer, error) {
	head := data
	if len(head) > 12 {
		head = head[:12]
	}

	r.mtx.Lock()
	entries := r.entries
	r.mtx.Unlock()

	for _, e := range entries {
		if !e.sniff(head) {
			continue
		}

		src, err := e.dec.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("vaultaudio: decoding %s: %w", e.format, err)
		}
		defer src.Close()

		buf, err := audio.ReadAll(src)
		if err != nil {
			return nil, fmt.Errorf("vaultaudio: decoding %s: %w", e.format, err)
		}
		return buf, nil
	}

	return nil, ErrUnknownFormat
}

// DefaultRegistry recognizes WAV, AIFF, Ogg Vorbis and MP3.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("wav", sniffWav, wav.Decoder{})
	r.Register("aiff", sniffAiff, aiff.Decoder{})
	r.Register("ogg vorbis", sniffOgg, vorbis.Decoder{})
	// MP3 sniffing is loose (ID3 tag or bare frame sync), keep it last.
	r.Register("mp3", sniffMp3, mp3.Decoder{})
	return r
}

var defaultRegistry = DefaultRegistry()

// DecodeBytes decodes raw media bytes into a Buffer using the default
// registry. The buffer's native sample rate is authoritative; nothing
// downstream resamples implicitly.
func DecodeBytes(data []byte) (*audio.Buffer, error) {
	return defaultRegistry.Decode(data)
}

// Decode reads r fully and decodes it. Editor inputs are bounded
// uploads, so buffering the whole stream is acceptable and lets every
// decoder seek.
func Decode(r io.Reader) (*audio.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("vaultaudio: reading input: %w", err)
	}
	return DecodeBytes(data)
}

func sniffWav(head []byte) bool {
	return len(head) >= 12 &&
		bytes.Equal(head[0:4], []byte("RIFF")) &&
		bytes.Equal(head[8:12], []byte("WAVE"))
}

func sniffAiff(head []byte) bool {
	return len(head) >= 12 &&
		bytes.Equal(head[0:4], []byte("FORM")) &&
		(bytes.Equal(head[8:12], []byte("AIFF")) || bytes.Equal(head[8:12], []byte("AIFC")))
}

func sniffOgg(head []byte) bool {
	return len(head) >= 4 && bytes.Equal(head[0:4], []byte("OggS"))
}

func sniffMp3(head []byte) bool {
	if len(head) >= 3 && bytes.Equal(head[0:3], []byte("ID3")) {
		return true
	}
	// Frame sync: 11 set bits.
	return len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0
}
