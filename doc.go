// SPDX-License-Identifier: EPL-2.0

// Package vaultaudio is the audio editing core of a personal media
// vault: decode, preview, edit and render audio entirely in memory.
//
// The surrounding application (storage, auth, collections) supplies raw
// media bytes and persists the rendered artifacts; this module owns
// everything between those two boundaries.
//
// # Decoding
//
// Decode sniffs the container from its first bytes and produces a
// Buffer, one float32 slice per channel at the file's native rate:
//
//	buf, err := vaultaudio.Decode(file)
//
// Supported formats: WAV, AIFF, MP3, Ogg Vorbis. The caller-supplied
// content type is ignored; decode failure is the only gate.
//
// # Editing
//
// An edit session holds an edit.Params value describing trim, fades,
// volume, playback rate, 3-band EQ, noise gate and reverb mix. The fx
// package turns Params into an ordered effects chain used identically
// by the live player and the offline renderer, so the saved file always
// matches the preview:
//
//	out, err := render.Render(buf, params)
//	art, err := render.NewArtifact(out, "edited.wav")
//
// # Playback
//
// The player package drives realtime preview through the same chain on
// an oto output device, with seek, pause, trim-bounded playback and
// rate control.
//
// # Merging
//
// merge.Concatenate joins decoded tracks back to back with a linear
// crossfade between adjacent pairs, independent of the single-track
// effects chain.
package vaultaudio
