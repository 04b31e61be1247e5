// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// Result describes a decoded MP3 stream.
type Result struct {
	SampleRate int
	// Frames is the number of decoded sample frames.
	Frames   int64
	Duration time.Duration
}

// Verify decodes the whole MP3 stream in r with github.com/hajimehoshi/go-mp3.
// wantRate, when non-zero, must match the stream sample rate.
func Verify(r io.Reader, wantRate int) (Result, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrVerifyFailed, err)
	}

	return verify(dec, wantRate)
}

// VerifyFile opens path and verifies it.
func VerifyFile(path string, wantRate int) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w", err)
	}
	defer f.Close()

	return Verify(f, wantRate)
}

func verify(dec mp3Reader, wantRate int) (Result, error) {
	rate := dec.SampleRate()
	if wantRate != 0 && rate != wantRate {
		return Result{}, fmt.Errorf("%w: sample rate %d, want %d", ErrVerifyFailed, rate, wantRate)
	}

	// go-mp3 always decodes to 16-bit little-endian stereo
	const bytesPerFrame = 4

	buf := make([]byte, 8192)
	var total int64

	for {
		n, err := dec.Read(buf)
		total += int64(n)

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrVerifyFailed, err)
		}
	}

	frames := total / bytesPerFrame
	if frames == 0 {
		return Result{}, fmt.Errorf("%w: no audio decoded", ErrVerifyFailed)
	}

	res := Result{SampleRate: rate, Frames: frames}
	if rate > 0 {
		res.Duration = time.Duration(frames) * time.Second / time.Duration(rate)
	}

	return res, nil
}
