// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"sync"
)

// Mode is the channel layout requested from an encoder.
type Mode int

const (
	Mono Mode = iota
	Stereo
)

func (m Mode) String() string {
	switch m {
	case Mono:
		return "mono"
	case Stereo:
		return "stereo"
	default:
		return "unknown"
	}
}

// ModeFor returns Mono for a single channel and Stereo otherwise.
func ModeFor(channels int) Mode {
	if channels == 1 {
		return Mono
	}

	return Stereo
}

// Format describes an interleaved PCM stream.
type Format struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
	// BlockAlign is the size of one frame (one sample per channel) in bytes.
	BlockAlign int
}

// BytesPerSample of a single channel sample.
func (f Format) BytesPerSample() int {
	if f.Channels == 0 {
		return 0
	}

	return f.BlockAlign / f.Channels
}

// Params configures an Encoder before Init.
type Params struct {
	Channels   int
	SampleRate int
	Mode       Mode
	// Quality follows the usual MP3 encoder scale: 0 is best, 9 is fastest.
	Quality int
}

// Encoder is one in-progress compression session. It holds codec state
// between calls and is not safe for concurrent use.
type Encoder interface {
	// Configure sets the stream parameters. It must be called before Init.
	Configure(p Params) error
	// Init finalizes the parameters. Encode calls fail before Init succeeds.
	Init() error

	// EncodeMono encodes frames samples of a single channel stream into out
	// and returns the number of bytes written to out. Zero means the codec
	// buffered the input and produced nothing yet.
	EncodeMono(pcm []int16, frames int, out []byte) (int, error)
	// EncodeInterleaved is EncodeMono for interleaved multi-channel input.
	EncodeInterleaved(pcm []int16, frames int, out []byte) (int, error)

	// Flush writes whatever the codec still holds into out. It is called
	// once, after the last chunk.
	Flush(out []byte) (int, error)

	// Close releases the codec state. It is safe to call more than once.
	Close() error
}

// Codec constructs new encoder sessions.
type Codec interface {
	NewEncoder() (Encoder, error)
	// Ext is the file extension of the codec output, including the dot.
	Ext() string
}

// Registry for codecs by format key (e.g., "mp3").
type Registry struct {
	codecs map[string]Codec

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Codec),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, c Codec) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = c
}

func (r *Registry) Get(format string) (Codec, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	c, ok := r.codecs[format]
	return c, ok
}
