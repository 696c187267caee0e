// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// fakeMP3 serves a fixed 16-bit LE PCM byte stream like go-mp3 does.
type fakeMP3 struct {
	r *bytes.Reader
}

func newFakeMP3(samples []int16) *fakeMP3 {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	return &fakeMP3{r: bytes.NewReader(data)}
}

func (f *fakeMP3) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *fakeMP3) SampleRate() int            { return 44100 }

func TestSource_ConvertsPCM(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        newFakeMP3([]int16{16384, -16384, 32767, -32768}),
		sampleRate: 44100,
	}

	if src.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2 (go-mp3 always emits stereo)", src.Channels())
	}
	if src.SampleRate() != 44100 {
		t.Fatalf("SampleRate() = %d, want 44100", src.SampleRate())
	}

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("ReadSamples() = %d, want 4", n)
	}

	want := []float32{0.5, -0.5, 32767.0 / 32768, -1}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestSource_EOF(t *testing.T) {
	t.Parallel()

	src := &source{dec: newFakeMP3(nil), sampleRate: 44100}

	n, err := src.ReadSamples(make([]float32, 8))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestDecode_GarbageInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("not an mp3 stream"))); err == nil {
		t.Error("Decode() = nil error on garbage input")
	}
}
