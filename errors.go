// SPDX-License-Identifier: EPL-2.0

package wav2mp3

import "errors"

var (
	ErrUsage          = errors.New("usage: wav2mp3 [options] <wav directory>")
	ErrUnknownFormat  = errors.New("unknown output format")
	ErrInvalidOptions = errors.New("invalid options")
)
