// SPDX-License-Identifier: EPL-2.0

package player

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/avharel/vaultaudio/audio"
)

// byteStream adapts an audio.Source to the io.Reader the output device
// pulls from, encoding samples as little-endian float32. When the
// source runs dry it fires done exactly once, on its own goroutine so
// the device's read loop never blocks on the player lock.
type byteStream struct {
	src      audio.Source
	buf      []float32
	done     func()
	signaled bool
}

func newByteStream(src audio.Source, done func()) *byteStream {
	return &byteStream{src: src, done: done}
}

func (b *byteStream) Read(p []byte) (int, error) {
	channels := b.src.Channels()
	values := len(p) / 4
	values -= values % channels
	if values == 0 {
		return 0, nil
	}

	if cap(b.buf) < values {
		b.buf = make([]float32, values)
	}

	n, err := b.src.ReadSamples(b.buf[:values])
	for i := range n {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(b.buf[i]))
	}

	if err == io.EOF && !b.signaled {
		b.signaled = true
		if b.done != nil {
			go b.done()
		}
	}

	return n * 4, err
}
