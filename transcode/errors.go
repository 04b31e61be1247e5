// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"errors"

	"github.com/ik5/wav2mp3/audio"
	"github.com/ik5/wav2mp3/formats/wav"
)

var (
	ErrIO     = errors.New("I/O failure")
	ErrEncode = errors.New("encode failed")
	ErrPanic  = errors.New("job panicked")
	ErrState  = errors.New("session already run")

	// Aliases so callers can classify session errors without importing the
	// format and codec packages.
	ErrMalformedHeader = wav.ErrMalformedHeader
	ErrEncoderInit     = audio.ErrEncoderInit
)
