// SPDX-License-Identifier: EPL-2.0

// Package transcode converts PCM WAV files with an audio.Codec, one file
// per worker.
//
// # Sessions
//
// A Session converts one file and moves through the states
//
//	Created -> Configured -> Streaming -> Flushing -> Closed
//
// with Failed reachable from every state but Closed. The header is parsed
// first; the encoder is acquired and configured next; only then is the
// destination created. Chunks of SamplesPerRead frames are read into a
// buffer that lives for the whole session, encoded with the exact frame
// count read, and the produced bytes are appended in read order. After the
// last chunk the encoder is flushed once into a separate FlushBufferSize
// buffer.
//
// Output buffers are sized for the codec's worst case:
//
//	samples_per_read = io_block / bytes_per_sample
//	output_capacity  = ceil(1.25 * samples_per_read) + 7200
//
// # Errors
//
// Session errors match one of ErrMalformedHeader, ErrEncoderInit, ErrIO or
// ErrEncode with errors.Is. None of them is fatal to a Pool.
//
// # Workers
//
// Queue is a mutex guarded list of paths; TryPop never blocks. A Pool starts
// a fixed number of goroutines that pop and run jobs until the queue is
// empty, and Run returns once all of them have exited:
//
//	q := transcode.NewQueue(paths...)
//	pool := transcode.NewPool(0, q, func(path string) error {
//	    _, err := transcode.NewSession(path, opts).Run()
//	    return err
//	})
//	stats := pool.Run()
//
// There is no cancellation: a started session runs to completion.
package transcode
