// SPDX-License-Identifier: EPL-2.0

package edit

import (
	"errors"
	"testing"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	p := Defaults(12.5)

	if p.TrimStart != 0 || p.TrimEnd != 12.5 {
		t.Errorf("Defaults() trim = [%v, %v], want [0, 12.5]", p.TrimStart, p.TrimEnd)
	}
	if p.Volume != 100 || p.Rate != 1 {
		t.Errorf("Defaults() volume/rate = %d/%v, want 100/1", p.Volume, p.Rate)
	}
	if p.HasEQ() || p.HasGate() || p.HasReverb() {
		t.Error("Defaults() must enable no optional stage")
	}
	if err := p.Validate(12.5); err != nil {
		t.Errorf("Defaults().Validate() = %v, want nil", err)
	}
}

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	const duration = 10.0

	cases := []struct {
		name    string
		mutate  func(*Params)
		wantErr error
	}{
		{"defaults", func(*Params) {}, nil},
		{"trim start negative", func(p *Params) { p.TrimStart = -0.1 }, ErrInvalidTrim},
		{"trim end past duration", func(p *Params) { p.TrimEnd = duration + 1 }, ErrInvalidTrim},
		{"trim empty", func(p *Params) { p.TrimStart, p.TrimEnd = 4, 4 }, ErrInvalidTrim},
		{"trim reversed", func(p *Params) { p.TrimStart, p.TrimEnd = 7, 3 }, ErrInvalidTrim},
		{"fade in negative", func(p *Params) { p.FadeIn = -1 }, ErrInvalidFade},
		{"fade out past trim", func(p *Params) {
			p.TrimStart, p.TrimEnd = 2, 5
			p.FadeOut = 4
		}, ErrInvalidFade},
		{"volume negative", func(p *Params) { p.Volume = -1 }, ErrInvalidVolume},
		{"volume above 200", func(p *Params) { p.Volume = 201 }, ErrInvalidVolume},
		{"volume boost", func(p *Params) { p.Volume = 200 }, nil},
		{"rate unsupported", func(p *Params) { p.Rate = 1.25 }, ErrInvalidRate},
		{"rate zero", func(p *Params) { p.Rate = 0 }, ErrInvalidRate},
		{"bass too low", func(p *Params) { p.BassDB = -13 }, ErrInvalidEQGain},
		{"treble too high", func(p *Params) { p.TrebleDB = 12.5 }, ErrInvalidEQGain},
		{"eq at limits", func(p *Params) { p.BassDB, p.MidDB, p.TrebleDB = -12, 12, 12 }, nil},
		{"reverb above 100", func(p *Params) { p.ReverbMix = 101 }, ErrInvalidPercent},
		{"gate negative", func(p *Params) { p.NoiseGate = -1 }, ErrInvalidPercent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := Defaults(duration)
			tc.mutate(&p)

			if err := p.Validate(duration); !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestParams_ValidRates(t *testing.T) {
	t.Parallel()

	for _, rate := range Rates {
		p := Defaults(10)
		p.Rate = rate
		if err := p.Validate(10); err != nil {
			t.Errorf("Validate() with rate %v = %v, want nil", rate, err)
		}
	}
}

func TestParams_Predicates(t *testing.T) {
	t.Parallel()

	p := Defaults(10)

	p.MidDB = -3
	if !p.HasEQ() {
		t.Error("HasEQ() = false with MidDB set")
	}

	p.NoiseGate = 1
	if !p.HasGate() {
		t.Error("HasGate() = false with NoiseGate set")
	}

	p.ReverbMix = 50
	if !p.HasReverb() {
		t.Error("HasReverb() = false with ReverbMix set")
	}
}

func TestParams_Gain(t *testing.T) {
	t.Parallel()

	cases := []struct {
		volume int
		want   float32
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{200, 2},
	}

	for _, tc := range cases {
		p := Defaults(10)
		p.Volume = tc.volume
		if got := p.Gain(); got != tc.want {
			t.Errorf("Gain() with volume %d = %v, want %v", tc.volume, got, tc.want)
		}
	}
}
