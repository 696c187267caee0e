// SPDX-License-Identifier: EPL-2.0

// Package waveform paints a peak-envelope view of a buffer into an
// image. The UI layer blits the image; everything here is a pure
// function of buffer plus overlay state, recomputed per frame, so there
// is no partial-redraw bookkeeping. The per-column min/max scan keeps a
// full recompute cheap enough for animation-frame cadence.
package waveform

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/avharel/vaultaudio/audio"
)

var ErrInvalidSize = errors.New("waveform: width and height must be positive")

// Overlay carries the edit-state decorations drawn over the envelope.
// Times are in seconds. A negative Playhead hides the marker.
type Overlay struct {
	TrimStart float64
	TrimEnd   float64
	FadeIn    float64
	FadeOut   float64
	Playhead  float64
}

// Palette. Vars so an embedding app can restyle without forking.
var (
	Background = color.NRGBA{R: 0x12, G: 0x14, B: 0x18, A: 0xff}
	Wave       = color.NRGBA{R: 0x4c, G: 0xaf, B: 0x8a, A: 0xff}
	Dim        = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x99}
	Fade       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x55}
	Playhead   = color.NRGBA{R: 0xe8, G: 0x4c, B: 0x3d, A: 0xff}
)

// Render draws channel 0 of buf as a min/max peak envelope, one
// vertical bar per pixel column, then layers the trim/fade/playhead
// overlays. Peaks, not RMS: averaging would visually swallow
// transients.
func Render(buf *audio.Buffer, width, height int, ov Overlay) (*image.RGBA, error) {
	if buf == nil || buf.Channels() == 0 || buf.Len() == 0 {
		return nil, audio.ErrNoSamples
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	samples := buf.Channel(0)
	step := (len(samples) + width - 1) / width
	mid := float64(height) / 2

	for col := range width {
		start := col * step
		if start >= len(samples) {
			break
		}
		end := min(start+step, len(samples))

		lo, hi := samples[start], samples[start]
		for _, s := range samples[start+1 : end] {
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}

		// y grows downward; positive samples go above the midline.
		yTop := int(mid - float64(hi)*mid)
		yBot := int(mid - float64(lo)*mid)
		yTop = clamp(yTop, 0, height-1)
		yBot = clamp(yBot, 0, height-1)

		for y := yTop; y <= yBot; y++ {
			img.SetRGBA(col, y, toRGBA(Wave))
		}
	}

	drawOverlay(img, buf.Duration(), width, height, ov)

	return img, nil
}

func drawOverlay(img *image.RGBA, duration float64, width, height int, ov Overlay) {
	toPx := func(t float64) int {
		return clamp(int(t/duration*float64(width)), 0, width)
	}

	// Darken everything outside the trim range.
	trimStart := toPx(ov.TrimStart)
	trimEnd := width
	if ov.TrimEnd > 0 {
		trimEnd = toPx(ov.TrimEnd)
	}
	shadeColumns(img, 0, trimStart, height, func(int) color.NRGBA { return Dim })
	shadeColumns(img, trimEnd, width, height, func(int) color.NRGBA { return Dim })

	// Fade regions: linear alpha gradient, strongest where gain is lowest.
	if ov.FadeIn > 0 {
		fadeEnd := toPx(ov.TrimStart + ov.FadeIn)
		span := fadeEnd - trimStart
		if span > 0 {
			shadeColumns(img, trimStart, fadeEnd, height, func(x int) color.NRGBA {
				c := Fade
				c.A = uint8(float64(c.A) * (1 - float64(x-trimStart)/float64(span)))
				return c
			})
		}
	}
	if ov.FadeOut > 0 {
		fadeStart := toPx(ov.TrimEnd - ov.FadeOut)
		span := trimEnd - fadeStart
		if span > 0 {
			shadeColumns(img, fadeStart, trimEnd, height, func(x int) color.NRGBA {
				c := Fade
				c.A = uint8(float64(c.A) * float64(x-fadeStart) / float64(span))
				return c
			})
		}
	}

	// 2px playhead marker.
	if ov.Playhead >= 0 {
		x := clamp(toPx(ov.Playhead), 0, width-2)
		for y := range height {
			img.SetRGBA(x, y, toRGBA(Playhead))
			img.SetRGBA(x+1, y, toRGBA(Playhead))
		}
	}
}

// shadeColumns alpha-blends col(x) over columns [x0, x1).
func shadeColumns(img *image.RGBA, x0, x1, height int, col func(x int) color.NRGBA) {
	for x := x0; x < x1; x++ {
		c := col(x)
		if c.A == 0 {
			continue
		}
		for y := range height {
			blend(img, x, y, c)
		}
	}
}

func blend(img *image.RGBA, x, y int, c color.NRGBA) {
	dst := img.RGBAAt(x, y)
	a := uint32(c.A)
	inv := 255 - a

	img.SetRGBA(x, y, color.RGBA{
		R: uint8((uint32(c.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(c.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(c.B)*a + uint32(dst.B)*inv) / 255),
		A: 0xff,
	})
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
