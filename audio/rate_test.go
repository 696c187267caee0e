// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/avharel/vaultaudio/internal/audiotest"
)

func drain(t *testing.T, src Source) []float32 {
	t.Helper()

	buf := make([]float32, 1024)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestNewRateConverter_InvalidRatio(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSource(8000, 1, 10, func(int, int) float32 { return 0 })

	for _, ratio := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewRateConverter(src, ratio); !errors.Is(err, ErrInvalidRatio) {
			t.Errorf("NewRateConverter(ratio=%v) error = %v, want ErrInvalidRatio", ratio, err)
		}
	}
}

func TestRateConverter_DoubleSpeedHalvesLength(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSource(8000, 1, 8000, func(int, int) float32 { return 0.5 })
	rc, err := NewRateConverter(src, 2)
	if err != nil {
		t.Fatalf("NewRateConverter() error = %v", err)
	}

	out := drain(t, rc)

	want := 4000
	if len(out) < want-10 || len(out) > want+10 {
		t.Errorf("converted %d samples, want ≈%d", len(out), want)
	}
	for i, s := range out {
		if math.Abs(float64(s)-0.5) > 0.01 {
			t.Fatalf("out[%d] = %v, want ≈0.5", i, s)
		}
	}
}

func TestRateConverter_HalfSpeedDoublesLength(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSource(8000, 2, 4000, func(int, int) float32 { return 0.25 })
	rc, err := NewRateConverter(src, 0.5)
	if err != nil {
		t.Fatalf("NewRateConverter() error = %v", err)
	}

	out := drain(t, rc)

	want := 2 * 8000 // frames * channels
	if len(out) < want-20 || len(out) > want+20 {
		t.Errorf("converted %d samples, want ≈%d", len(out), want)
	}
}

func TestRateConverter_UnityPreservesSignal(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSource(8000, 1, 800, func(sample, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * 440 * float64(sample) / 8000))
	})
	rc, _ := NewRateConverter(src, 1)

	out := drain(t, rc)
	for i, s := range out {
		want := math.Sin(2 * math.Pi * 440 * float64(i) / 8000)
		if math.Abs(float64(s)-want) > 0.01 {
			t.Fatalf("out[%d] = %v, want ≈%v", i, s, want)
		}
	}
}

func TestResample_RateAndLength(t *testing.T) {
	t.Parallel()

	buf, _ := FromChannels(44100, audiotest.Sine(1, 44100, 44100, 440))

	got, err := Resample(buf, 22050)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	if got.SampleRate() != 22050 {
		t.Errorf("Resample() rate = %d, want 22050", got.SampleRate())
	}
	if got.Len() < 22000 || got.Len() > 22100 {
		t.Errorf("Resample() length = %d, want ≈22050", got.Len())
	}
}

func TestResample_SameRateClones(t *testing.T) {
	t.Parallel()

	buf, _ := FromChannels(8000, audiotest.Constant(1, 100, 0.5))

	got, err := Resample(buf, 8000)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	got.Channel(0)[0] = -1
	if buf.Channel(0)[0] != 0.5 {
		t.Errorf("Resample at same rate must return a copy")
	}
}
