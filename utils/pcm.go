// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// Float32ToInt16 converts a sample in [-1, 1] to 16-bit PCM, clamping
// values outside that range.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// DecodeInt16LE decodes little-endian 16-bit samples from src into dst and
// returns the number of samples decoded. A trailing odd byte is ignored.
//
// WAV stores samples little-endian; this is the only place the sample
// byte order is handled.
func DecodeInt16LE(dst []int16, src []byte) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		dst[i] = int16(binary.LittleEndian.Uint16(src[2*i:]))
	}

	return n
}

// EncodeInt16LE is the inverse of DecodeInt16LE. dst must hold 2*len(src)
// bytes.
func EncodeInt16LE(dst []byte, src []int16) int {
	n := min(len(src), len(dst)/2)
	for i := range n {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(src[i]))
	}

	return n * 2
}
