// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"
	"time"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/wav2mp3/audio"
)

// Info is what Probe learns about a WAV file without reading its samples.
type Info struct {
	Format   audio.Format
	Duration time.Duration
}

// Probe walks the RIFF chunks of rs using go-audio/wav. Unlike ReadHeader
// it follows the chunk list, so it also understands files with extra chunks
// before the sample data.
func Probe(rs io.ReadSeeker) (Info, error) {
	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return Info{}, ErrNotWavFile
	}

	gf := dec.Format()
	if gf == nil {
		return Info{}, ErrNotWavFile
	}

	dur, err := dec.Duration()
	if err != nil {
		return Info{}, fmt.Errorf("reading duration: %w", err)
	}

	bits := int(dec.BitDepth)

	return Info{
		Format: audio.Format{
			Channels:      gf.NumChannels,
			SampleRate:    gf.SampleRate,
			BitsPerSample: bits,
			BlockAlign:    gf.NumChannels * bits / 8,
		},
		Duration: dur,
	}, nil
}

// ProbeFile opens path and probes it.
func ProbeFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("probe %s: %w", path, err)
	}
	defer f.Close()

	return Probe(f)
}
