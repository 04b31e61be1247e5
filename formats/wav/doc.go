// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes canonical PCM WAV files.
//
// # Supported Formats
//
// Currently supported for streaming:
//   - PCM 16-bit
//   - Mono and stereo
//   - Any sample rate
//
// # Reading WAV Files
//
// ReadHeader decodes the fixed 44-byte header field by field and leaves the
// reader at the first sample. It only looks at the layout: the RIFF, WAVE,
// fmt and data identifiers are returned but not checked, and files with
// extra chunks before the data are not supported.
//
//	file, _ := os.Open("audio.wav")
//	h, err := wav.ReadHeader(file)
//	if err != nil {
//	    // errors.Is(err, wav.ErrMalformedHeader) for short or broken headers
//	}
//
//	f, err := h.PCMFormat()
//	if err == nil {
//	    err = wav.Supported(f)
//	}
//
//	fr := wav.NewFrameReader(file, f)
//	buf := make([]int16, 2048*f.Channels)
//	frames, err := fr.ReadFrames(buf)
//
// # Byte Order
//
// Header fields and samples are decoded explicitly as little-endian, as WAV
// requires, independent of the host byte order. Big-endian (RIFX) files are
// not supported.
//
// # Probing
//
// Probe and ProbeFile use github.com/go-audio/wav to walk the RIFF chunk
// list and report the format and duration of a file. This is used for
// status output only; the encoding path relies on ReadHeader.
//
// # Writing WAV Files
//
// Use WriteWAV16 or WritePCM16 to create WAV files:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	err := wav.WritePCM16(file, 44100, 2, samples)
//
// WriteHeader writes a Header verbatim, which is handy for producing
// intentionally broken files in tests.
//
// # Error Handling
//
// The package defines several error types:
//   - ErrMalformedHeader: the header is short or its numeric fields are inconsistent
//   - ErrOnlyPCM16bitSupported: only 16-bit PCM can be streamed
//   - ErrUnsupportedChannels: only mono and stereo can be streamed
//   - ErrNotWavFile: Probe could not find a WAV file
package wav
