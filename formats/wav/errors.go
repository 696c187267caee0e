// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile       = errors.New("wav: not a RIFF/WAVE file")
	ErrUnsupportedDepth = errors.New("wav: unsupported bit depth")
	ErrNoSamples        = errors.New("wav: buffer has no samples")
	ErrNoChannels       = errors.New("wav: buffer has no channels")
)
