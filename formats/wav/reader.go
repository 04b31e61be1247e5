// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wav2mp3/audio"
	"github.com/ik5/wav2mp3/utils"
)

// FrameReader reads whole 16-bit PCM frames from the data region of a WAV
// stream.
type FrameReader struct {
	r        io.Reader
	channels int
	align    int
	buf      []byte
}

// NewFrameReader returns a reader for a stream positioned at the first
// sample. f must be a 16-bit format (see Supported).
func NewFrameReader(r io.Reader, f audio.Format) *FrameReader {
	return &FrameReader{
		r:        r,
		channels: f.Channels,
		align:    f.BlockAlign,
	}
}

// ReadFrames fills dst with up to len(dst)/channels interleaved frames and
// returns the number of frames read. A short count is returned for the last
// chunk of the stream; a trailing incomplete frame is dropped. When the
// stream is exhausted it returns 0, io.EOF.
func (fr *FrameReader) ReadFrames(dst []int16) (int, error) {
	frames := len(dst) / fr.channels
	if frames == 0 {
		return 0, nil
	}

	need := frames * fr.align
	if cap(fr.buf) < need {
		fr.buf = make([]byte, need)
	}
	fr.buf = fr.buf[:need]

	n, err := io.ReadFull(fr.r, fr.buf)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		return 0, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		frames = n / fr.align
		if frames == 0 {
			return 0, io.EOF
		}
	default:
		return 0, fmt.Errorf("reading samples: %w", err)
	}

	utils.DecodeInt16LE(dst[:frames*fr.channels], fr.buf[:frames*fr.align])

	return frames, nil
}
