// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE PCM audio and encodes buffers back to
// 16-bit PCM WAV, the container every saved artifact uses.
package wav
