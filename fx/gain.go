// SPDX-License-Identifier: EPL-2.0

package fx

// gainStage is the master gain. It is always the last stage and always
// present. On top of the flat volume scalar it applies the linear
// fade-in/fade-out envelope: a ramp from zero over the first fadeIn
// frames of the trimmed range and a ramp to zero over its last fadeOut
// frames. The stage tracks its absolute position within the trimmed
// range so live playback resuming mid-range starts the envelope at the
// right point.
type gainStage struct {
	gain float32

	fadeIn  int // frames
	fadeOut int // frames
	total   int // frames in the trimmed range
	pos     int // next frame, relative to trim start
}

func newGain(gain float32, rate float64, fadeIn, fadeOut, total, startOffset float64) *gainStage {
	return &gainStage{
		gain:    gain,
		fadeIn:  int(fadeIn * rate),
		fadeOut: int(fadeOut * rate),
		total:   int(total * rate),
		pos:     int(startOffset * rate),
	}
}

func (g *gainStage) Process(buf []float32) {
	for i := range buf {
		f := g.gain

		if g.fadeIn > 0 && g.pos < g.fadeIn {
			f *= float32(g.pos) / float32(g.fadeIn)
		}
		if g.fadeOut > 0 && g.pos >= g.total-g.fadeOut {
			remain := g.total - g.pos
			if remain < 0 {
				remain = 0
			}
			f *= float32(remain) / float32(g.fadeOut)
		}

		buf[i] *= f
		g.pos++
	}
}
