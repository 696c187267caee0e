// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var errEmptyKernel = errors.New("fx: empty convolution kernel")

// overlapAdd is a streaming FFT convolver using the overlap-add method.
// Input arrives in arbitrary block sizes; the convolution tail of each
// internal segment is carried over and summed into subsequent output, so
// feeding the signal block by block matches one-shot convolution sample
// for sample.
type overlapAdd struct {
	kernelFFT []complex128
	kernelLen int
	segSize   int // input samples per FFT segment
	fftSize   int

	plan *algofft.Plan[complex128]

	scratch []complex128
	carry   []float64 // pending tail contributions, len == fftSize
}

func newOverlapAdd(kernel []float64) (*overlapAdd, error) {
	if len(kernel) == 0 {
		return nil, errEmptyKernel
	}

	segSize := 4096
	fftSize := nextPowerOf2(segSize + len(kernel) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fx: fft plan: %w", err)
	}

	oa := &overlapAdd{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: len(kernel),
		segSize:   segSize,
		fftSize:   fftSize,
		plan:      plan,
		scratch:   make([]complex128, fftSize),
		carry:     make([]float64, fftSize),
	}

	padded := make([]complex128, fftSize)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}
	if err := plan.Forward(oa.kernelFFT, padded); err != nil {
		return nil, fmt.Errorf("fx: kernel fft: %w", err)
	}

	return oa, nil
}

// processBlock convolves in with the kernel and writes the same number
// of output samples to out. len(out) must equal len(in). Tail samples
// beyond the block are accumulated into the carry buffer.
func (oa *overlapAdd) processBlock(out, in []float64) error {
	for start := 0; start < len(in); start += oa.segSize {
		end := min(start+oa.segSize, len(in))
		if err := oa.segment(out[start:end], in[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (oa *overlapAdd) segment(out, in []float64) error {
	n := len(in)

	for i := range oa.scratch {
		oa.scratch[i] = 0
	}
	for i, v := range in {
		oa.scratch[i] = complex(v, 0)
	}

	if err := oa.plan.Forward(oa.scratch, oa.scratch); err != nil {
		return fmt.Errorf("fx: forward fft: %w", err)
	}
	for i := range oa.scratch {
		oa.scratch[i] *= oa.kernelFFT[i]
	}
	if err := oa.plan.Inverse(oa.scratch, oa.scratch); err != nil {
		return fmt.Errorf("fx: inverse fft: %w", err)
	}

	// Emit n samples: this segment's head plus carried-over tails.
	for i := range n {
		out[i] = real(oa.scratch[i]) + oa.carry[i]
	}

	// Slide the carry left by n and fold in this segment's tail.
	remain := oa.fftSize - n
	for i := range remain {
		oa.carry[i] = oa.carry[n+i] + real(oa.scratch[n+i])
	}
	for i := remain; i < oa.fftSize; i++ {
		oa.carry[i] = 0
	}

	return nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
