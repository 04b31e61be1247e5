// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wav2mp3/audio"
)

// HeaderSize is the size of the canonical RIFF/WAVE header. The sample data
// starts right after it.
const HeaderSize = 44

// Header is the canonical 44-byte WAV header, field by field.
type Header struct {
	ChunkID   [4]byte // "RIFF"
	ChunkSize uint32
	RIFFType  [4]byte // "WAVE"

	FmtID         [4]byte // "fmt "
	FmtSize       uint32
	AudioFormat   uint16 // 1 = PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16

	DataID   [4]byte // "data"
	DataSize uint32
}

// cursor reads little-endian fields in order from a fixed buffer.
type cursor struct {
	b   []byte
	off int
}

func (c *cursor) tag() (t [4]byte) {
	copy(t[:], c.b[c.off:c.off+4])
	c.off += 4

	return t
}

func (c *cursor) u16() uint16 {
	v := binary.LittleEndian.Uint16(c.b[c.off:])
	c.off += 2

	return v
}

func (c *cursor) u32() uint32 {
	v := binary.LittleEndian.Uint32(c.b[c.off:])
	c.off += 4

	return v
}

// ReadHeader reads exactly HeaderSize bytes from r and decodes them
// positionally. The identifiers are kept but not checked, so any file with
// the canonical layout is accepted. On success r is positioned at the first
// sample.
//
// Fields are decoded as little-endian, which is what WAV mandates. Samples
// are decoded as little-endian too, by FrameReader, so the result does not
// depend on the host byte order.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte

	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w: got %d of %d bytes", ErrMalformedHeader, n, HeaderSize)
		}

		return Header{}, fmt.Errorf("reading WAV header: %w", err)
	}

	c := cursor{b: buf[:]}

	return Header{
		ChunkID:       c.tag(),
		ChunkSize:     c.u32(),
		RIFFType:      c.tag(),
		FmtID:         c.tag(),
		FmtSize:       c.u32(),
		AudioFormat:   c.u16(),
		NumChannels:   c.u16(),
		SampleRate:    c.u32(),
		ByteRate:      c.u32(),
		BlockAlign:    c.u16(),
		BitsPerSample: c.u16(),
		DataID:        c.tag(),
		DataSize:      c.u32(),
	}, nil
}

// PCMFormat validates the numeric fields and returns the stream format.
func (h Header) PCMFormat() (audio.Format, error) {
	f := audio.Format{
		Channels:      int(h.NumChannels),
		SampleRate:    int(h.SampleRate),
		BitsPerSample: int(h.BitsPerSample),
		BlockAlign:    int(h.BlockAlign),
	}

	if f.BlockAlign != f.Channels*(f.BitsPerSample/8) {
		return audio.Format{}, fmt.Errorf("%w: block align %d != %d channels * %d bits / 8",
			ErrMalformedHeader, f.BlockAlign, f.Channels, f.BitsPerSample)
	}

	switch {
	case f.Channels == 0:
		return audio.Format{}, fmt.Errorf("%w: channel count is zero", ErrMalformedHeader)
	case f.SampleRate == 0:
		return audio.Format{}, fmt.Errorf("%w: sample rate is zero", ErrMalformedHeader)
	case f.BitsPerSample == 0 || f.BitsPerSample%8 != 0:
		return audio.Format{}, fmt.Errorf("%w: bits per sample is %d", ErrMalformedHeader, f.BitsPerSample)
	}

	return f, nil
}

// Supported reports whether f can be streamed as 16-bit mono or stereo.
// The returned error matches ErrMalformedHeader as well as the specific
// reason.
func Supported(f audio.Format) error {
	if f.BitsPerSample != 16 {
		return fmt.Errorf("%w: %w (got %d bits)", ErrMalformedHeader, ErrOnlyPCM16bitSupported, f.BitsPerSample)
	}

	if f.Channels != 1 && f.Channels != 2 {
		return fmt.Errorf("%w: %w (got %d channels)", ErrMalformedHeader, ErrUnsupportedChannels, f.Channels)
	}

	return nil
}
