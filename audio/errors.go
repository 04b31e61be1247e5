// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrEncoderInit    = errors.New("encoder initialization failed")
	ErrNotInitialized = errors.New("encoder not initialized")
	ErrInvalidChunk   = errors.New("frame count exceeds pcm buffer")
	ErrBufferTooSmall = errors.New("output buffer too small")
	ErrEncoderClosed  = errors.New("encoder closed")
)
