// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/avharel/vaultaudio/audio"
	"github.com/avharel/vaultaudio/internal/audiotest"
)

func TestDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	orig, _ := audio.FromChannels(44100, audiotest.Sine(2, 4410, 44100, 440))

	data, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 44100 || src.Channels() != 2 {
		t.Fatalf("Decode() = %d Hz x %d channels, want 44100 x 2", src.SampleRate(), src.Channels())
	}

	got, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if got.Len() != orig.Len() {
		t.Fatalf("round trip length = %d, want %d", got.Len(), orig.Len())
	}

	// Rounding quantization against matching scale factors keeps the
	// round-trip error within one 16-bit step.
	const tol = 1.0 / 32767
	for ch := range got.Channels() {
		for i := range got.Len() {
			diff := math.Abs(float64(got.Channel(ch)[i]) - float64(orig.Channel(ch)[i]))
			if diff > tol {
				t.Fatalf("channel %d sample %d off by %v", ch, i, diff)
			}
		}
	}
}

func TestDecode_NonSeekableInput(t *testing.T) {
	t.Parallel()

	orig, _ := audio.FromChannels(8000, audiotest.Constant(1, 100, 0.25))
	data, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// Hide the Seeker so the decoder has to buffer the stream itself.
	src, err := Decoder{}.Decode(io.LimitReader(bytes.NewReader(data), int64(len(data))))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	got, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if got.Len() != 100 {
		t.Errorf("decoded %d frames, want 100", got.Len())
	}
}

func TestDecode_NotWav(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("definitely not a wav file")))
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Decode() error = %v, want ErrNotWavFile", err)
	}
}

func TestDepthScale(t *testing.T) {
	t.Parallel()

	for bits, want := range map[int]float32{
		8:  128,
		16: 32768,
		24: 8388608,
		32: 2147483648,
	} {
		got, err := depthScale(bits)
		if err != nil || got != want {
			t.Errorf("depthScale(%d) = %v, %v, want %v, nil", bits, got, err, want)
		}
	}

	if _, err := depthScale(12); !errors.Is(err, ErrUnsupportedDepth) {
		t.Errorf("depthScale(12) error = %v, want ErrUnsupportedDepth", err)
	}
}

// fakePCM hands out a fixed int stream in whatever chunk the caller asks
// for, ending with a short read like go-audio does at the data edge.
type fakePCM struct {
	data []int
	pos  int
}

func (f *fakePCM) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	n := copy(buf.Data, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func TestSource_ShortReadSignalsEOF(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &fakePCM{data: []int{32767, -16384, 0}},
		sampleRate: 8000,
		channels:   1,
		scale:      32768,
	}

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if n != 3 || err != io.EOF {
		t.Fatalf("ReadSamples() = %d, %v, want 3, io.EOF", n, err)
	}

	if dst[0] != 1 || dst[1] != -0.5 || dst[2] != 0 {
		t.Errorf("decoded samples = %v, want [1 -0.5 0]", dst[:3])
	}
}

// Positive and negative samples round-trip within one quantization
// step each; full scale comes back exact at both rails.
func TestDecode_QuantizationTolerance(t *testing.T) {
	t.Parallel()

	orig, err := audio.FromChannels(8000, [][]float32{{0.9, -0.9, 0.5, 1.0, -1.0}})
	if err != nil {
		t.Fatalf("FromChannels() error = %v", err)
	}

	data, err := Encode(orig)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	got, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	const tol = 1.0 / 32767
	for i := range got.Len() {
		diff := math.Abs(float64(got.Channel(0)[i]) - float64(orig.Channel(0)[i]))
		if diff > tol {
			t.Errorf("sample %d: %v -> %v, off by %v (tol %v)",
				i, orig.Channel(0)[i], got.Channel(0)[i], diff, tol)
		}
	}

	if got.Channel(0)[3] != 1 {
		t.Errorf("full-scale positive = %v, want exactly 1", got.Channel(0)[3])
	}
	if got.Channel(0)[4] != -1 {
		t.Errorf("full-scale negative = %v, want exactly -1", got.Channel(0)[4])
	}
}

func TestSource_ExhaustedReturnsEOF(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &fakePCM{},
		sampleRate: 8000,
		channels:   1,
		scale:      32768,
	}

	n, err := src.ReadSamples(make([]float32, 4))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v, want 0, io.EOF", n, err)
	}
}
