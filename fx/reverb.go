// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"math/rand/v2"
)

// Reverb impulse response: white noise under an inverse-square decay
// envelope over a fixed two-second tail, generated at the buffer's
// sample rate. The PRNG is seeded deterministically (per channel, so the
// stereo image decorrelates) which makes two renders of the same edit
// byte-identical.
const (
	reverbTailSeconds = 2.0
	reverbSeed        = 0x7661756c74 // "vault"
)

func impulseResponse(rate, channel int) []float64 {
	n := int(reverbTailSeconds * float64(rate))
	rng := rand.New(rand.NewPCG(reverbSeed, uint64(channel)))

	ir := make([]float64, n)
	for i := range ir {
		decay := 1 - float64(i)/float64(n)
		ir[i] = (rng.Float64()*2 - 1) * decay * decay
	}
	return ir
}

// reverbStage convolves the signal against a synthetic room impulse and
// mixes it back: out = (1-mix)*dry + mix*wet.
type reverbStage struct {
	conv *overlapAdd
	wet  float64
	dry  float64

	in  []float64
	out []float64
}

func newReverb(rate, channel, mixPercent int) (*reverbStage, error) {
	conv, err := newOverlapAdd(impulseResponse(rate, channel))
	if err != nil {
		return nil, err
	}

	mix := float64(mixPercent) / 100
	return &reverbStage{
		conv: conv,
		wet:  mix,
		dry:  1 - mix,
	}, nil
}

func (r *reverbStage) Process(buf []float32) {
	n := len(buf)
	if n == 0 {
		return
	}

	if cap(r.in) < n {
		r.in = make([]float64, n)
		r.out = make([]float64, n)
	}
	in := r.in[:n]
	out := r.out[:n]

	for i, v := range buf {
		in[i] = float64(v)
	}
	if err := r.conv.processBlock(out, in); err != nil {
		// FFT failures are configuration errors caught at build time;
		// mid-stream the only safe fallback is passing the dry signal.
		return
	}
	for i := range buf {
		buf[i] = float32(r.dry*in[i] + r.wet*out[i])
	}
}
