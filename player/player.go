// SPDX-License-Identifier: EPL-2.0

// Package player drives realtime preview playback of an edit session.
//
// Playback runs the same fx chain the offline renderer uses, streamed
// through an Output device. The controller is a small state machine
// (Stopped, Playing, Paused); every Play builds a fresh graph from the
// current edit state, and every teardown bumps a session counter so a
// completion signal from a dead graph can never touch a live one.
//
// The playhead is derived, not polled: position while playing is the
// stored offset plus scaled wall-clock time, recomputed on demand at
// animation-frame cadence by the UI.
package player

import (
	"errors"
	"sync"
	"time"

	"github.com/avharel/vaultaudio/audio"
	"github.com/avharel/vaultaudio/edit"
	"github.com/avharel/vaultaudio/fx"
)

var (
	ErrClosed   = errors.New("player: closed")
	ErrNoBuffer = errors.New("player: no buffer loaded")
)

// State of the playback controller.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Player is the live playback controller for one working buffer.
// Methods are safe for concurrent use; UI event handlers and the
// device's completion signal race by design.
type Player struct {
	mu  sync.Mutex
	out Output
	buf *audio.Buffer

	params    edit.Params
	hasParams bool

	state     State
	offset    float64 // buffer-timeline seconds; playhead when not playing
	startedAt time.Time
	stream    Stream
	session   uint64
	closed    bool
}

// New creates a stopped player over buf.
func New(out Output, buf *audio.Buffer) (*Player, error) {
	if buf == nil || buf.Channels() == 0 || buf.Len() == 0 {
		return nil, ErrNoBuffer
	}
	return &Player{out: out, buf: buf}, nil
}

// Play starts or restarts playback with the given edit state. The
// effects graph is rebuilt on every call since parameters may have
// changed since the last one. Resuming from Paused continues from the
// stored offset; from Stopped, playback starts at the later of the trim
// start and the current playhead. Reaching the trim end stops playback
// and resets the playhead to the trim start.
func (p *Player) Play(params edit.Params) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if err := params.Validate(p.buf.Duration()); err != nil {
		return err
	}

	if p.state == Playing {
		p.offset = p.positionLocked()
		p.teardownLocked()
	}

	p.params = params
	p.hasParams = true

	start := p.offset
	if start < params.TrimStart || start >= params.TrimEnd {
		start = params.TrimStart
	}

	return p.startLocked(start)
}

// startLocked builds and starts a fresh playback graph at start
// (buffer-timeline seconds). Caller holds the lock and has validated
// params.
func (p *Player) startLocked(start float64) error {
	rate := p.buf.SampleRate()
	startFrame := int(start * float64(rate))
	endFrame := int(p.params.TrimEnd * float64(rate))

	src, err := audio.NewBufferSource(p.buf, startFrame, endFrame)
	if err != nil {
		return err
	}

	chain, err := fx.BuildAt(rate, p.buf.Channels(), p.params, start-p.params.TrimStart)
	if err != nil {
		return err
	}
	feed, err := chain.Stream(src)
	if err != nil {
		return err
	}
	if p.params.Rate != 1 {
		feed, err = audio.NewRateConverter(feed, p.params.Rate)
		if err != nil {
			return err
		}
	}

	p.session++
	session := p.session

	stream, err := p.out.NewStream(newByteStream(feed, func() {
		p.finished(session)
	}))
	if err != nil {
		return err
	}
	stream.Play()

	p.stream = stream
	p.offset = start
	p.startedAt = time.Now()
	p.state = Playing

	return nil
}

// finished handles the natural end-of-playback signal. A stale session
// token means a newer graph has replaced the one that finished, and the
// signal is dropped.
func (p *Player) finished(session uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if session != p.session || p.state != Playing {
		return
	}

	p.teardownLocked()
	p.offset = p.params.TrimStart
	p.state = Stopped
}

// Pause freezes playback, folding scaled wall-clock time into the
// stored offset. The graph is torn down; source nodes are single-use.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing {
		return
	}

	p.offset = p.positionLocked()
	p.teardownLocked()
	p.state = Paused
}

// Stop tears down playback and resets the playhead to the trim start.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Stopped {
		return
	}

	p.teardownLocked()
	p.offset = p.params.TrimStart
	p.state = Stopped
}

// Seek moves the playhead, clamped to the trim range. While playing it
// restarts the graph at the new offset; patching a running graph's
// schedule would audibly glitch.
func (p *Player) Seek(t float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	lo, hi := 0.0, p.buf.Duration()
	if p.hasParams {
		lo, hi = p.params.TrimStart, p.params.TrimEnd
	}
	if t < lo {
		t = lo
	}
	if t > hi {
		t = hi
	}

	wasPlaying := p.state == Playing
	if wasPlaying {
		p.teardownLocked()
		p.state = Paused
	}
	p.offset = t

	if wasPlaying {
		// Seeking to the very end leaves nothing to play; treat it as
		// natural completion instead of restarting an empty graph.
		if t >= hi {
			p.offset = lo
			p.state = Stopped
			return nil
		}
		return p.startLocked(t)
	}
	return nil
}

// SetRate switches playback speed. A running source cannot change rate,
// so while playing the graph restarts at the current position.
func (p *Player) SetRate(rate float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if !p.hasParams {
		p.params = edit.Defaults(p.buf.Duration())
		p.hasParams = true
	}

	params := p.params
	params.Rate = rate
	if err := params.Validate(p.buf.Duration()); err != nil {
		return err
	}

	wasPlaying := p.state == Playing
	var pos float64
	if wasPlaying {
		pos = p.positionLocked()
		p.teardownLocked()
		p.state = Paused
	}
	p.params = params

	if wasPlaying {
		p.offset = pos
		return p.startLocked(pos)
	}
	return nil
}

// Position returns the playhead in buffer-timeline seconds. During
// playback it is offset plus elapsed wall-clock time scaled by the
// playback rate, clamped to the trim end.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() float64 {
	if p.state != Playing {
		return p.offset
	}

	pos := p.offset + time.Since(p.startedAt).Seconds()*p.params.Rate
	if p.hasParams && pos > p.params.TrimEnd {
		pos = p.params.TrimEnd
	}
	return pos
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close tears down any active playback and invalidates the player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.teardownLocked()
	p.state = Stopped
	p.closed = true
	return nil
}

// teardownLocked closes the active stream, if any, and bumps the
// session counter so in-flight completion callbacks become stale.
func (p *Player) teardownLocked() {
	p.session++
	if p.stream != nil {
		_ = p.stream.Close()
		p.stream = nil
	}
}
