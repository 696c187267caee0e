// SPDX-License-Identifier: EPL-2.0

package fx

import "math"

// Fixed band layout of the three-band equalizer.
const (
	eqBassHz   = 250  // low shelf
	eqMidHz    = 1000 // peaking
	eqMidQ     = 1.0
	eqTrebleHz = 4000 // high shelf

	shelfQ = math.Sqrt2 / 2
)

// biquad is a single second-order IIR section in Direct Form II
// Transposed. a0 is normalized to 1 and not stored. State is float64 to
// keep the recursion stable on long float32 streams.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64

	d0, d1 float64
}

func (s *biquad) process(buf []float32) {
	for i, v := range buf {
		x := float64(v)
		y := s.b0*x + s.d0
		s.d0 = s.b1*x - s.a1*y + s.d1
		s.d1 = s.b2*x - s.a2*y
		buf[i] = float32(y)
	}
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquad {
	return biquad{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
	}
}

// RBJ cookbook designs. freq must be below Nyquist; the builder's fixed
// bands guarantee that for any sample rate the decoders produce.

func lowShelf(freq, gainDB, q, rate float64) biquad {
	w0 := 2 * math.Pi * freq / rate
	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	return normalize(
		a*((a+1)-(a-1)*cw+beta),
		2*a*((a-1)-(a+1)*cw),
		a*((a+1)-(a-1)*cw-beta),
		(a+1)+(a-1)*cw+beta,
		-2*((a-1)+(a+1)*cw),
		(a+1)+(a-1)*cw-beta,
	)
}

func peaking(freq, gainDB, q, rate float64) biquad {
	w0 := 2 * math.Pi * freq / rate
	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)

	return normalize(
		1+alpha*a,
		-2*cw,
		1-alpha*a,
		1+alpha/a,
		-2*cw,
		1-alpha/a,
	)
}

func highShelf(freq, gainDB, q, rate float64) biquad {
	w0 := 2 * math.Pi * freq / rate
	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	return normalize(
		a*((a+1)+(a-1)*cw+beta),
		-2*a*((a-1)+(a+1)*cw),
		a*((a+1)+(a-1)*cw-beta),
		(a+1)-(a-1)*cw+beta,
		2*((a-1)-(a+1)*cw),
		(a+1)-(a-1)*cw-beta,
	)
}

// eqStage cascades the three fixed bands. Bands at 0 dB are identity but
// the whole stage is only built when at least one band is non-flat.
type eqStage struct {
	sections [3]biquad
}

func newEQ(rate, bassDB, midDB, trebleDB float64) *eqStage {
	return &eqStage{
		sections: [3]biquad{
			lowShelf(eqBassHz, bassDB, shelfQ, rate),
			peaking(eqMidHz, midDB, eqMidQ, rate),
			highShelf(eqTrebleHz, trebleDB, shelfQ, rate),
		},
	}
}

func (e *eqStage) Process(buf []float32) {
	for i := range e.sections {
		e.sections[i].process(buf)
	}
}
