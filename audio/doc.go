// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory sample model shared by every
// part of the editing core.
//
// # Buffer
//
// A Buffer is the canonical decoded form: one float32 slice per channel,
// all channels equal in length, one sample rate per buffer. Buffers are
// immutable by convention; edits produce new buffers:
//
//	trimmed, err := audio.Trim(buf, 2.0, 7.0)
//
// # Source
//
// Source is the streaming counterpart, pulling interleaved float32
// frames. Decoders produce Sources; ReadAll collects one into a Buffer;
// NewBufferSource streams a frame range back out for playback:
//
//	src, _ := audio.NewBufferSource(buf, start, end)
//	buf2, _ := audio.ReadAll(src)
//
// # Rate conversion
//
// RateConverter consumes source frames at a fixed ratio with cubic
// interpolation. It backs both the live player's playback-rate control
// (0.5x-2x against a fixed-rate output device) and the buffer-level
// Resample helper.
package audio
