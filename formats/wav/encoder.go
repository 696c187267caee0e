// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/avharel/vaultaudio/audio"
)

const headerSize = 44

// Encode serializes buf as a 16-bit PCM RIFF/WAVE container and returns
// the raw bytes. It fails only on a degenerate buffer.
func Encode(buf *audio.Buffer) ([]byte, error) {
	if buf == nil || buf.Channels() == 0 {
		return nil, ErrNoChannels
	}

	out := new(bytes.Buffer)
	out.Grow(headerSize + buf.Len()*buf.Channels()*2)

	if err := EncodeTo(out, buf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// EncodeTo writes buf to w as a 16-bit PCM RIFF/WAVE container: the
// canonical 44-byte header followed by little-endian interleaved frames
// (all channels of sample 0, then all channels of sample 1, ...).
func EncodeTo(w io.Writer, buf *audio.Buffer) error {
	if buf == nil || buf.Channels() == 0 {
		return ErrNoChannels
	}
	if buf.Len() == 0 {
		return ErrNoSamples
	}

	channels := buf.Channels()
	length := buf.Len()
	blockAlign := channels * 2
	dataSize := uint32(length * blockAlign)

	header := make([]byte, headerSize)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format tag
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(buf.SampleRate()))
	binary.LittleEndian.PutUint32(header[28:32], uint32(buf.SampleRate()*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], 16) // bits per sample
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("wav: writing header: %w", err)
	}

	// Interleave and convert in bounded chunks so large buffers do not
	// double in memory.
	const chunkFrames = 4096
	chunk := make([]byte, chunkFrames*blockAlign)

	for start := 0; start < length; start += chunkFrames {
		end := min(start+chunkFrames, length)
		frames := end - start

		for f := range frames {
			for ch := range channels {
				v := pcm16(buf.Channel(ch)[start+f])
				off := (f*channels + ch) * 2
				binary.LittleEndian.PutUint16(chunk[off:off+2], uint16(v))
			}
		}

		if _, err := w.Write(chunk[:frames*blockAlign]); err != nil {
			return fmt.Errorf("wav: writing samples: %w", err)
		}
	}

	return nil
}

// pcm16 clamps x to [-1, 1] and quantizes to signed 16-bit, rounding
// to the nearest step. Negative values scale by 32768 and non-negative
// by 32767 so both ends of the asymmetric int16 range are reachable
// exactly; the decoder divides by the same factors.
func pcm16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	if x < 0 {
		return int16(math.Round(float64(x) * 32768))
	}
	return int16(math.Round(float64(x) * 32767))
}
