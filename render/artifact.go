// SPDX-License-Identifier: EPL-2.0

package render

import (
	"math"

	"github.com/avharel/vaultaudio/audio"
	"github.com/avharel/vaultaudio/edit"
	"github.com/avharel/vaultaudio/formats/wav"
)

// ContentType of every rendered artifact.
const ContentType = "audio/wav"

// An Artifact is the byte blob handed to the upload collaborator plus
// the metadata it persists alongside. Descriptive metadata (title,
// tags, source references) stays with the caller.
type Artifact struct {
	Data        []byte
	Filename    string
	ContentType string
	Size        int
	Duration    int // seconds, rounded
}

// Artifact encodes buf as 16-bit PCM WAV and wraps it with the derived
// metadata the persistence layer expects.
func NewArtifact(buf *audio.Buffer, filename string) (*Artifact, error) {
	data, err := wav.Encode(buf)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Data:        data,
		Filename:    filename,
		ContentType: ContentType,
		Size:        len(data),
		Duration:    int(math.Round(buf.Duration())),
	}, nil
}

// Save is the one-call save path: offline render then encode. The
// working buffer is left untouched on any failure.
func Save(buf *audio.Buffer, p edit.Params, filename string) (*Artifact, error) {
	out, err := Render(buf, p)
	if err != nil {
		return nil, err
	}
	return NewArtifact(out, filename)
}
