// SPDX-License-Identifier: EPL-2.0

// Package render produces the final edited audio: the offline
// counterpart of live preview. It trims the working buffer, runs the
// same effects chain the player uses, bakes the fade envelopes in, and
// wraps the result as a WAV artifact for the upload layer.
package render

import (
	"fmt"

	"github.com/avharel/vaultaudio/audio"
	"github.com/avharel/vaultaudio/edit"
	"github.com/avharel/vaultaudio/fx"
)

// Render applies the full edit state to buf in non-realtime mode and
// returns a new buffer covering the trimmed range. The input buffer is
// never touched, so a failed render leaves the session able to retry.
//
// Rendering is deterministic: identical params over an unchanged buffer
// produce identical output (the reverb impulse is seeded), so saving
// twice yields byte-identical files.
func Render(buf *audio.Buffer, p edit.Params) (*audio.Buffer, error) {
	if buf == nil || buf.Channels() == 0 || buf.Len() == 0 {
		return nil, audio.ErrNoSamples
	}
	if err := p.Validate(buf.Duration()); err != nil {
		return nil, err
	}

	out, err := audio.Trim(buf, p.TrimStart, p.TrimEnd)
	if err != nil {
		return nil, err
	}

	chain, err := fx.Build(out.SampleRate(), out.Channels(), p)
	if err != nil {
		return nil, fmt.Errorf("render: building chain: %w", err)
	}

	channels := make([][]float32, out.Channels())
	for ch := range channels {
		channels[ch] = out.Channel(ch)
	}
	chain.Process(channels)

	return out, nil
}
