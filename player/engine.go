// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Output opens playback streams on an audio device. The oto-backed
// Engine is the real implementation; tests use an in-process fake.
type Output interface {
	NewStream(r io.Reader) (Stream, error)
}

// Stream is one single-use playback graph on the device. Streams are
// never restarted: every play builds a fresh one and teardown
// invalidates the old handle explicitly.
type Stream interface {
	Play()
	Pause()
	Close() error
}

var ErrEngineClosed = errors.New("player: engine is closed")

// Engine owns the realtime audio device for one editor session. It
// wraps an oto context configured for the working buffer's sample rate
// and channel count, 32-bit float samples.
//
// The underlying device context is process-wide; Close suspends it so a
// later editor session can resume it. Acquire an Engine when the editor
// opens and Close it on unmount.
type Engine struct {
	ctx    *oto.Context
	closed bool
}

// NewEngine opens the playback device and blocks until it is ready.
func NewEngine(sampleRate, channels int) (*Engine, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	if err := ctx.Resume(); err != nil {
		return nil, err
	}

	return &Engine{ctx: ctx}, nil
}

// NewStream attaches r to a fresh device player.
func (e *Engine) NewStream(r io.Reader) (Stream, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}
	return &otoStream{p: e.ctx.NewPlayer(r)}, nil
}

// Close releases the device. The Engine is unusable afterwards.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.ctx.Suspend()
}

type otoStream struct {
	p *oto.Player
}

func (s *otoStream) Play()        { s.p.Play() }
func (s *otoStream) Pause()       { s.p.Pause() }
func (s *otoStream) Close() error { return s.p.Close() }
