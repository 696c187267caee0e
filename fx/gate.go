// SPDX-License-Identifier: EPL-2.0

package fx

import "math"

// Noise-gate parameters. The gate is modeled as an aggressive downward
// compressor rather than a true gate: threshold tracks the user's
// percentage, ratio is near-limiting, attack is near-instant and release
// fast. This is an intentional simplification; it suppresses low-level
// content without the hard open/close artifacts of a binary gate.
const (
	gateRatio     = 20.0
	gateAttackMs  = 1.0
	gateReleaseMs = 50.0
)

// gateThresholdDB maps the 0..100 gate percentage onto -50..0 dB.
func gateThresholdDB(percent int) float64 {
	return -50 + float64(percent)*0.5
}

type gateStage struct {
	thresholdDB  float64
	attackCoeff  float64
	releaseCoeff float64

	env float64 // linear peak envelope
}

func newGate(rate float64, percent int) *gateStage {
	return &gateStage{
		thresholdDB:  gateThresholdDB(percent),
		attackCoeff:  envCoeff(rate, gateAttackMs),
		releaseCoeff: envCoeff(rate, gateReleaseMs),
	}
}

// envCoeff returns the one-pole smoothing coefficient for a time
// constant in milliseconds at the given sample rate.
func envCoeff(rate, ms float64) float64 {
	return math.Exp(-1 / (rate * ms / 1000))
}

func (g *gateStage) Process(buf []float32) {
	for i, v := range buf {
		level := math.Abs(float64(v))

		// Peak follower: fast attack, slow release.
		coeff := g.releaseCoeff
		if level > g.env {
			coeff = g.attackCoeff
		}
		g.env = coeff*g.env + (1-coeff)*level

		if g.env <= 0 {
			continue
		}

		levelDB := 20 * math.Log10(g.env)
		over := levelDB - g.thresholdDB
		if over <= 0 {
			continue
		}

		// Hard-knee compression above threshold at the gate ratio.
		reductionDB := -over * (1 - 1/gateRatio)
		gain := math.Pow(10, reductionDB/20)
		buf[i] = float32(float64(v) * gain)
	}
}
