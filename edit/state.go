// SPDX-License-Identifier: EPL-2.0

package edit

import "errors"

var (
	ErrInvalidTrim    = errors.New("edit: trim range is empty or outside the buffer")
	ErrInvalidFade    = errors.New("edit: fade longer than trimmed range or negative")
	ErrInvalidVolume  = errors.New("edit: volume must be in 0..200 percent")
	ErrInvalidRate    = errors.New("edit: unsupported playback rate")
	ErrInvalidEQGain  = errors.New("edit: eq gain must be in -12..+12 dB")
	ErrInvalidPercent = errors.New("edit: percent must be in 0..100")
)

// Rates are the playback rates the player accepts.
var Rates = []float64{0.5, 1, 1.5, 2}

// Params is the full per-session edit state. The UI layer owns and
// mutates it; the core only reads it. A fresh Params is created when a
// file loads and the whole struct is discarded on reset-to-original.
type Params struct {
	TrimStart float64 // seconds
	TrimEnd   float64 // seconds
	FadeIn    float64 // seconds, ramp after TrimStart
	FadeOut   float64 // seconds, ramp before TrimEnd

	Volume int     // percent, 0..200, 100 = unity
	Rate   float64 // one of Rates

	BassDB   float64 // low shelf, -12..+12
	MidDB    float64 // peaking, -12..+12
	TrebleDB float64 // high shelf, -12..+12

	ReverbMix int // percent, 0..100
	NoiseGate int // percent, 0..100
}

// Defaults returns the state a freshly loaded file starts with:
// full-length trim, unity volume, no effects.
func Defaults(duration float64) Params {
	return Params{
		TrimEnd: duration,
		Volume:  100,
		Rate:    1,
	}
}

// TrimDuration returns the length of the trimmed range in seconds.
func (p Params) TrimDuration() float64 { return p.TrimEnd - p.TrimStart }

// Validate checks p against the working buffer's duration. The UI clamps
// values before they reach the core, but the core defends anyway.
func (p Params) Validate(duration float64) error {
	if p.TrimStart < 0 || p.TrimEnd > duration || p.TrimStart >= p.TrimEnd {
		return ErrInvalidTrim
	}
	if p.FadeIn < 0 || p.FadeOut < 0 ||
		p.FadeIn > p.TrimDuration() || p.FadeOut > p.TrimDuration() {
		return ErrInvalidFade
	}
	if p.Volume < 0 || p.Volume > 200 {
		return ErrInvalidVolume
	}
	if !validRate(p.Rate) {
		return ErrInvalidRate
	}
	for _, g := range []float64{p.BassDB, p.MidDB, p.TrebleDB} {
		if g < -12 || g > 12 {
			return ErrInvalidEQGain
		}
	}
	if p.ReverbMix < 0 || p.ReverbMix > 100 ||
		p.NoiseGate < 0 || p.NoiseGate > 100 {
		return ErrInvalidPercent
	}

	return nil
}

func validRate(r float64) bool {
	for _, allowed := range Rates {
		if r == allowed {
			return true
		}
	}
	return false
}

// Stage-activity predicates. The graph builder inserts optional stages
// only when the matching predicate is true, so live preview and offline
// render agree on the chain shape by construction.

// HasEQ reports whether any EQ band is non-flat.
func (p Params) HasEQ() bool {
	return p.BassDB != 0 || p.MidDB != 0 || p.TrebleDB != 0
}

// HasGate reports whether the noise gate is engaged.
func (p Params) HasGate() bool { return p.NoiseGate > 0 }

// HasReverb reports whether the reverb send is audible.
func (p Params) HasReverb() bool { return p.ReverbMix > 0 }

// Gain returns the master gain scalar (Volume 100 = unity).
func (p Params) Gain() float32 { return float32(p.Volume) / 100 }
