// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"math"
	"os"

	"github.com/ik5/wav2mp3/formats/wav"
	"github.com/ik5/wav2mp3/utils"
)

// SineSamples returns frames interleaved frames of a sine wave at half
// scale, the same on every channel.
func SineSamples(sampleRate, channels, frames int, frequency float64) []int16 {
	samples := make([]int16, frames*channels)
	for f := range frames {
		t := float64(f) / float64(sampleRate)
		v := utils.Float32ToInt16(float32(0.5 * math.Sin(2*math.Pi*frequency*t)))
		for ch := range channels {
			samples[f*channels+ch] = v
		}
	}

	return samples
}

// RampSamples returns n samples counting up from 0, handy for checking
// sample order.
func RampSamples(n int) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(i)
	}

	return samples
}

// WriteWAV writes samples as a 16-bit PCM WAV file at path.
func WriteWAV(path string, sampleRate, channels int, samples []int16) error {
	buf := new(bytes.Buffer)
	if err := wav.WritePCM16(buf, sampleRate, channels, samples); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// WriteSineWAV writes frames frames of a 440 Hz tone.
func WriteSineWAV(path string, sampleRate, channels, frames int) error {
	return WriteWAV(path, sampleRate, channels, SineSamples(sampleRate, channels, frames, 440))
}

// WriteRawWAV writes h verbatim followed by data, so it can produce
// inconsistent headers.
func WriteRawWAV(path string, h wav.Header, data []byte) error {
	buf := new(bytes.Buffer)
	if err := wav.WriteHeader(buf, h); err != nil {
		return err
	}
	buf.Write(data)

	return os.WriteFile(path, buf.Bytes(), 0o644)
}
