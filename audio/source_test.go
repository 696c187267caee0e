// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"

	"github.com/avharel/vaultaudio/internal/audiotest"
)

func TestReadAll_Deinterleaves(t *testing.T) {
	t.Parallel()

	// Channel 0 carries the frame index, channel 1 its negation.
	src := audiotest.NewSource(8000, 2, 100, func(sample, channel int) float32 {
		v := float32(sample) / 100
		if channel == 1 {
			v = -v
		}
		return v
	})

	buf, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if buf.Channels() != 2 || buf.Len() != 100 {
		t.Fatalf("ReadAll() = %d channels x %d, want 2 x 100", buf.Channels(), buf.Len())
	}
	for i := range buf.Len() {
		if buf.Channel(0)[i] != -buf.Channel(1)[i] {
			t.Fatalf("sample %d not deinterleaved: %v vs %v", i, buf.Channel(0)[i], buf.Channel(1)[i])
		}
	}
}

func TestReadAll_EmptySource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSource(8000, 1, 0, func(int, int) float32 { return 0 })

	_, err := ReadAll(src)
	if !errors.Is(err, ErrNoSamples) {
		t.Errorf("ReadAll() error = %v, want ErrNoSamples", err)
	}
}

func TestBufferSource_RangeRoundTrip(t *testing.T) {
	t.Parallel()

	buf, _ := FromChannels(1000, audiotest.Ramp(2, 1000))

	src, err := NewBufferSource(buf, 100, 400)
	if err != nil {
		t.Fatalf("NewBufferSource() error = %v", err)
	}

	got, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if got.Len() != 300 {
		t.Fatalf("ReadAll() length = %d, want 300", got.Len())
	}
	for i := range got.Len() {
		if got.Channel(0)[i] != buf.Channel(0)[100+i] {
			t.Fatalf("sample %d = %v, want %v", i, got.Channel(0)[i], buf.Channel(0)[100+i])
		}
	}
}

func TestBufferSource_EmptyRange(t *testing.T) {
	t.Parallel()

	buf, _ := FromChannels(1000, audiotest.Silence(1, 1000))

	if _, err := NewBufferSource(buf, 500, 500); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("NewBufferSource() error = %v, want ErrInvalidRange", err)
	}
}

func TestBufferSource_PartialLastRead(t *testing.T) {
	t.Parallel()

	buf, _ := FromChannels(1000, audiotest.Constant(1, 10, 1))
	src, _ := NewBufferSource(buf, 0, 10)

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if n != 8 || err != nil {
		t.Fatalf("first ReadSamples() = %d, %v, want 8, nil", n, err)
	}

	n, err = src.ReadSamples(dst)
	if n != 2 || err != io.EOF {
		t.Fatalf("second ReadSamples() = %d, %v, want 2, io.EOF", n, err)
	}
}
