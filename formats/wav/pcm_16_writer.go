// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/wav2mp3/utils"
)

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.  samples must be int16 PCM.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	return WritePCM16(w, sampleRate, 1, samples)
}

// WritePCM16 writes a canonical 44-byte header followed by samples, which
// must be interleaved when channels > 1.
func WritePCM16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if err := WriteHeader(w, NewPCM16Header(sampleRate, channels, len(samples)*2)); err != nil {
		return err
	}

	// For better performance with large files, write in chunks
	const chunkSize = 8192
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		end := min(i+chunkSize, len(samples))
		n := utils.EncodeInt16LE(buf, samples[i:end])

		if _, err := w.Write(buf[:n]); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// NewPCM16Header fills a canonical header for dataSize bytes of 16-bit
// samples.
func NewPCM16Header(sampleRate, channels, dataSize int) Header {
	const bitsPerSample = 16
	blockAlign := channels * bitsPerSample / 8

	return Header{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + dataSize),
		RIFFType:      [4]byte{'W', 'A', 'V', 'E'},
		FmtID:         [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: bitsPerSample,
		DataID:        [4]byte{'d', 'a', 't', 'a'},
		DataSize:      uint32(dataSize),
	}
}

// WriteHeader encodes h in the canonical 44-byte layout. Fields are written
// exactly as given, so it can also produce inconsistent headers.
func WriteHeader(w io.Writer, h Header) error {
	header := make([]byte, HeaderSize)

	copy(header[0:4], h.ChunkID[:])
	binary.LittleEndian.PutUint32(header[4:8], h.ChunkSize)
	copy(header[8:12], h.RIFFType[:])

	copy(header[12:16], h.FmtID[:])
	binary.LittleEndian.PutUint32(header[16:20], h.FmtSize)
	binary.LittleEndian.PutUint16(header[20:22], h.AudioFormat)
	binary.LittleEndian.PutUint16(header[22:24], h.NumChannels)
	binary.LittleEndian.PutUint32(header[24:28], h.SampleRate)
	binary.LittleEndian.PutUint32(header[28:32], h.ByteRate)
	binary.LittleEndian.PutUint16(header[32:34], h.BlockAlign)
	binary.LittleEndian.PutUint16(header[34:36], h.BitsPerSample)

	copy(header[36:40], h.DataID[:])
	binary.LittleEndian.PutUint32(header[40:44], h.DataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
