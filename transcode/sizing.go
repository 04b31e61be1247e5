// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"fmt"

	"github.com/ik5/wav2mp3/audio"
	"github.com/ik5/wav2mp3/formats/wav"
)

const (
	// IOBlockBytes is the default read block used to size chunks.
	IOBlockBytes = 4096

	// FlushBufferSize is the smallest buffer a flush may safely write into.
	FlushBufferSize = 7200

	// outputOverhead is the fixed part of the worst case compressed size
	// of one chunk: 1.25 * samples + 7200.
	outputOverhead = 7200
)

// Sizes of the per-session scratch buffers.
type Sizes struct {
	// SamplesPerRead is the number of frames read per chunk.
	SamplesPerRead int
	// InputCapacity is the number of int16 values in the input buffer.
	InputCapacity int
	// OutputCapacity is the worst case encoded size of one chunk in bytes.
	OutputCapacity int
}

// SizeBuffers derives the chunk sizes from the read block size and the
// stream format. OutputCapacity is ceil(1.25 * SamplesPerRead) + 7200.
func SizeBuffers(ioBlockBytes int, f audio.Format) (Sizes, error) {
	bps := f.BytesPerSample()
	if bps <= 0 {
		return Sizes{}, fmt.Errorf("%w: %d bytes per sample", wav.ErrMalformedHeader, bps)
	}

	spr := ioBlockBytes / bps
	if spr <= 0 {
		return Sizes{}, fmt.Errorf("read block of %d bytes holds no %d byte samples", ioBlockBytes, bps)
	}

	return Sizes{
		SamplesPerRead: spr,
		InputCapacity:  spr * f.Channels,
		OutputCapacity: (5*spr+3)/4 + outputOverhead,
	}, nil
}

// ChunkBuffers are allocated once per session and reused for every chunk.
type ChunkBuffers struct {
	Input  []int16
	Output []byte
	Flush  []byte
}

func NewChunkBuffers(s Sizes) *ChunkBuffers {
	return &ChunkBuffers{
		Input:  make([]int16, s.InputCapacity),
		Output: make([]byte, s.OutputCapacity),
		Flush:  make([]byte, FlushBufferSize),
	}
}
