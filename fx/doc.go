// SPDX-License-Identifier: EPL-2.0

// Package fx builds the effects chain shared by live preview and offline
// rendering.
//
// A chain is assembled from edit.Params in a fixed order:
//
//	source -> [3-band EQ] -> [noise gate] -> [reverb] -> master gain
//
// Bracketed stages are optional and inserted only when the matching
// predicate on the edit state is true (non-flat EQ band, gate percent
// above zero, reverb mix above zero). The master gain is always present
// and also applies the linear fade-in/out envelope.
//
// The same Chain serves both execution modes: Process runs a whole
// trimmed buffer through it (offline render), Stream wraps an
// audio.Source for pull-based playback. Because every stage processes
// samples sequentially and keeps its own state, the two modes produce
// identical output for identical input, which is what guarantees the
// saved file matches the preview.
//
// Stage internals:
//
//   - EQ: RBJ biquads, low shelf at 250 Hz, peaking at 1 kHz (Q=1),
//     high shelf at 4 kHz, gains in dB straight from the edit state.
//   - Gate: an aggressive hard-knee compressor (20:1, 1 ms attack,
//     50 ms release, threshold -50+pct/2 dB) approximating a gate.
//   - Reverb: FFT overlap-add convolution against a deterministic
//     two-second noise impulse with inverse-square decay; wet/dry mix
//     (1-mix)/mix.
package fx
