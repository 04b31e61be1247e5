// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	ErrUnsupportedSampleRate = errors.New("unsupported MP3 sample rate")
	ErrUnsupportedChannels   = errors.New("only mono and stereo supported")
	ErrInvalidQuality        = errors.New("quality must be between 0 and 9")
	ErrModeMismatch          = errors.New("mode does not match channel count")
	ErrVerifyFailed          = errors.New("MP3 verification failed")
)
