// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 encoding and output verification.
//
// # Encoding
//
// Codec implements audio.Codec on top of github.com/braheezy/shine-mp3, a
// pure Go port of the shine fixed-point encoder:
//
//	enc, _ := mp3.Codec{}.NewEncoder()
//	defer enc.Close()
//
//	enc.Configure(audio.Params{Channels: 2, SampleRate: 44100, Mode: audio.Stereo, Quality: 3})
//	if err := enc.Init(); err != nil {
//	    // errors.Is(err, audio.ErrEncoderInit)
//	}
//
//	n, err := enc.EncodeInterleaved(pcm, frames, out)
//
// shine works on whole MP3 frames: 1152 samples per channel at 32, 44.1
// and 48 kHz, 576 at the MPEG-2 rates. The encoder keeps the
// samples that do not fill a frame and prepends them to the next chunk, so
// an encode call may return zero bytes. Flush pads the final partial frame
// with silence and encodes it.
//
// shine has a single fixed quality setting. The Quality parameter is
// validated (0-9) and otherwise ignored.
//
// # Verification
//
// Verify and VerifyFile decode a stream with github.com/hajimehoshi/go-mp3
// and report its rate and length:
//
//	res, err := mp3.VerifyFile("song.mp3", 44100)
//	if errors.Is(err, mp3.ErrVerifyFailed) {
//	    // the file does not decode, or the rate differs
//	}
//
// # Limitations
//
//   - Only mono and stereo input; mono is written as two identical channels
//   - Sample rates: 16000, 22050, 24000, 32000, 44100, 48000. shine always
//     writes 128 kbps, which MPEG-2.5 (8000, 11025, 12000 Hz) cannot carry
//   - The padding added by Flush makes the output up to one frame longer
//     than the input
package mp3
