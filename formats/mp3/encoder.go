// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"fmt"
	"io"

	shine "github.com/braheezy/shine-mp3/pkg/mp3"

	"github.com/ik5/wav2mp3/audio"
)

// Samples per channel in one MP3 frame.
const (
	mpeg1FrameSamples = 1152
	mpeg2FrameSamples = 576
)

// shineBitrate is the bitrate, in kbps, shine.NewEncoder always uses.
// MPEG-2.5 tops out at 64 kbps, so 8000, 11025 and 12000 Hz cannot be
// encoded.
const shineBitrate = 128

// shineChannels is the channel count shine is always opened with; mono
// input is duplicated into both channels instead of using shine's mono path.
const shineChannels = 2

// frameWriter is the part of the shine encoder used here, to allow testing
type frameWriter interface {
	Write(out io.Writer, data []int16) error
}

func newShineWriter(sampleRate, channels int) frameWriter {
	return shine.NewEncoder(sampleRate, channels)
}

// FrameSamples returns the number of samples per channel in one MP3 frame
// at sampleRate, or 0 if the rate cannot be encoded at shineBitrate.
func FrameSamples(sampleRate int) int {
	switch sampleRate {
	case 32000, 44100, 48000:
		return mpeg1FrameSamples
	case 16000, 22050, 24000:
		return mpeg2FrameSamples
	default:
		return 0
	}
}

// Codec produces MP3 encoders backed by github.com/braheezy/shine-mp3.
type Codec struct{}

func (Codec) Ext() string { return ".mp3" }

func (Codec) NewEncoder() (audio.Encoder, error) {
	return &encoder{newWriter: newShineWriter}, nil
}

// encoder only hands whole MP3 frames to shine. Samples that do not fill
// a frame stay in pending until the next chunk, and Flush pads the last
// partial frame with silence. Mono samples are upmixed right before they
// reach shine.
type encoder struct {
	params     audio.Params
	configured bool
	closed     bool

	newWriter    func(sampleRate, channels int) frameWriter
	fw           frameWriter
	frameSamples int

	pending []int16
	stereo  []int16
	scratch bytes.Buffer
}

func (e *encoder) Configure(p audio.Params) error {
	if e.closed {
		return audio.ErrEncoderClosed
	}

	if p.Channels != 1 && p.Channels != 2 {
		return fmt.Errorf("%w: %w (got %d)", audio.ErrEncoderInit, ErrUnsupportedChannels, p.Channels)
	}

	if p.Mode != audio.ModeFor(p.Channels) {
		return fmt.Errorf("%w: %w (%s with %d channels)", audio.ErrEncoderInit, ErrModeMismatch, p.Mode, p.Channels)
	}

	if p.Quality < 0 || p.Quality > 9 {
		return fmt.Errorf("%w: %w (got %d)", audio.ErrEncoderInit, ErrInvalidQuality, p.Quality)
	}

	e.params = p
	e.configured = true

	return nil
}

func (e *encoder) Init() error {
	if e.closed {
		return audio.ErrEncoderClosed
	}

	if !e.configured {
		return fmt.Errorf("%w: not configured", audio.ErrEncoderInit)
	}

	fs := FrameSamples(e.params.SampleRate)
	if fs == 0 || shine.CheckConfig(e.params.SampleRate, shineBitrate) < 0 {
		return fmt.Errorf("%w: %w (got %d Hz at %d kbps)",
			audio.ErrEncoderInit, ErrUnsupportedSampleRate, e.params.SampleRate, shineBitrate)
	}

	e.frameSamples = fs
	e.fw = e.newWriter(e.params.SampleRate, shineChannels)
	e.pending = make([]int16, 0, 2*fs*e.params.Channels)

	return nil
}

func (e *encoder) EncodeMono(pcm []int16, frames int, out []byte) (int, error) {
	if e.fw != nil && e.params.Channels != 1 {
		return 0, fmt.Errorf("mono encode on a %d channel stream: %w", e.params.Channels, ErrModeMismatch)
	}

	return e.encode(pcm, frames, out)
}

func (e *encoder) EncodeInterleaved(pcm []int16, frames int, out []byte) (int, error) {
	return e.encode(pcm, frames, out)
}

func (e *encoder) encode(pcm []int16, frames int, out []byte) (int, error) {
	if err := e.ready(); err != nil {
		return 0, err
	}

	n := frames * e.params.Channels
	if frames < 0 || n > len(pcm) {
		return 0, fmt.Errorf("%w: %d frames, %d samples", audio.ErrInvalidChunk, frames, len(pcm))
	}

	e.pending = append(e.pending, pcm[:n]...)

	perFrame := e.frameSamples * e.params.Channels
	whole := len(e.pending) / perFrame * perFrame
	if whole == 0 {
		return 0, nil
	}

	written, err := e.write(e.pending[:whole], out)
	if err != nil {
		return 0, err
	}

	// Keep the remainder for the next chunk
	e.pending = append(e.pending[:0], e.pending[whole:]...)

	return written, nil
}

func (e *encoder) Flush(out []byte) (int, error) {
	if err := e.ready(); err != nil {
		return 0, err
	}

	if len(e.pending) == 0 {
		return 0, nil
	}

	perFrame := e.frameSamples * e.params.Channels
	for len(e.pending) < perFrame {
		e.pending = append(e.pending, 0)
	}

	written, err := e.write(e.pending, out)
	e.pending = e.pending[:0]

	return written, err
}

func (e *encoder) write(pcm []int16, out []byte) (int, error) {
	e.scratch.Reset()

	if e.params.Channels == 1 {
		e.stereo = upmix(e.stereo[:0], pcm)
		pcm = e.stereo
	}

	if err := e.fw.Write(&e.scratch, pcm); err != nil {
		return 0, fmt.Errorf("shine: %w", err)
	}

	if e.scratch.Len() > len(out) {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", audio.ErrBufferTooSmall, e.scratch.Len(), len(out))
	}

	return copy(out, e.scratch.Bytes()), nil
}

// upmix appends every sample of mono twice to dst.
func upmix(dst, mono []int16) []int16 {
	for _, s := range mono {
		dst = append(dst, s, s)
	}

	return dst
}

func (e *encoder) ready() error {
	if e.closed {
		return audio.ErrEncoderClosed
	}

	if e.fw == nil {
		return audio.ErrNotInitialized
	}

	return nil
}

func (e *encoder) Close() error {
	e.closed = true
	e.fw = nil
	e.pending = nil
	e.stereo = nil
	e.scratch = bytes.Buffer{}

	return nil
}
