// SPDX-License-Identifier: EPL-2.0

// Package wav2mp3 converts a directory of PCM WAV files to MP3.
//
// Convert lists the WAV files directly inside a directory, queues them and
// lets a fixed number of workers take one whole file at a time. Each file
// is streamed through its own encoder session in small chunks, so memory
// use does not depend on file size:
//
//	stats, err := wav2mp3.Convert("/music/takes", wav2mp3.DefaultOptions())
//	if err != nil {
//	    // the directory could not be read
//	}
//	fmt.Println(stats.Converted, "converted,", stats.Failed, "failed")
//
// Every output file is written next to its source with the extension
// replaced by ".mp3". A file that fails to convert is reported and
// skipped; it never leaves a partial MP3 behind.
//
// # Supported Input
//
// Only canonical 44-byte header, 16-bit little-endian PCM WAV files with
// one or two channels are accepted. The header is read positionally, so
// files with extra chunks before the samples are not understood. Sample
// rates must be ones the MP3 encoder can carry at 128 kbps: 16000, 22050,
// 24000, 32000, 44100 or 48000 Hz.
//
// # Packages
//
//   - transcode: encode sessions, buffer sizing, the work queue and pool
//   - formats/wav: header parsing, frame reading, probing and writing
//   - formats/mp3: the MP3 codec and output verification
//   - audio: the codec capability interfaces and registry
//
// The wav2mp3 command in cmd/wav2mp3 wraps Convert.
package wav2mp3
