// SPDX-License-Identifier: EPL-2.0

// Package audio defines the types shared by the container parsers, the
// codecs and the transcoding pipeline.
//
// # Format
//
// Format describes an interleaved PCM stream as read from a container
// header. A frame holds one sample per channel, so BlockAlign is the frame
// size in bytes.
//
// # Codec Capability
//
// A Codec hands out Encoder sessions. An Encoder is stateful: it may keep
// samples from one call to the next (bit reservoir, look-ahead, partial
// frames), so the caller must feed chunks in order and call Flush once at
// the end:
//
//	enc, err := codec.NewEncoder()
//	if err != nil {
//	    return err
//	}
//	defer enc.Close()
//
//	enc.Configure(audio.Params{Channels: 2, SampleRate: 44100, Mode: audio.Stereo, Quality: 3})
//	if err := enc.Init(); err != nil {
//	    return err
//	}
//
//	n, err := enc.EncodeInterleaved(pcm, frames, out)
//	// write out[:n]
//
//	n, err = enc.Flush(flushBuf)
//	// write flushBuf[:n]
//
// A return of zero bytes from an encode call is not an error; the codec is
// holding the input until it has a complete frame.
//
// # Registry
//
// Codecs can be registered by format key:
//
//	reg := audio.NewRegistry()
//	reg.Register("mp3", mp3.Codec{})
//
//	codec, ok := reg.Get("mp3")
package audio
