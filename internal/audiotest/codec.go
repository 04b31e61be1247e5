// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"slices"
	"sync"

	"github.com/ik5/wav2mp3/audio"
)

// CallKind is the encoder method recorded by a Call.
type CallKind string

const (
	CallMono        CallKind = "mono"
	CallInterleaved CallKind = "interleaved"
	CallFlush       CallKind = "flush"
)

// Call is one recorded encode or flush call.
type Call struct {
	Kind   CallKind
	Frames int
	// First is the first sample passed, or 0 for flushes.
	First int16
	// Produced is the number of bytes returned.
	Produced int
}

// Codec is a fake audio.Codec whose encoders record every call. Encode call
// k (1-based) writes BytesPerCall bytes of value byte(k), unless k is in
// SilentCalls, in which case it returns 0. Flush writes FlushBytes bytes of
// 0xFF.
type Codec struct {
	BytesPerCall int
	FlushBytes   int
	SilentCalls  []int

	// Errors injected at each step; nil means success.
	NewErr       error
	ConfigureErr error
	InitErr      error
	EncodeErr    error
	FlushErr     error
	CloseErr     error

	mu       sync.Mutex
	encoders []*Encoder
}

// NewCodec returns a Codec that writes 4 bytes per call and 16 on flush.
func NewCodec() *Codec {
	return &Codec{BytesPerCall: 4, FlushBytes: 16}
}

func (c *Codec) Ext() string { return ".mp3" }

func (c *Codec) NewEncoder() (audio.Encoder, error) {
	if c.NewErr != nil {
		return nil, c.NewErr
	}

	e := &Encoder{codec: c}

	c.mu.Lock()
	c.encoders = append(c.encoders, e)
	c.mu.Unlock()

	return e, nil
}

// Encoders returns every encoder handed out so far.
func (c *Codec) Encoders() []*Encoder {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.encoders)
}

// Encoder is the fake session returned by Codec.
type Encoder struct {
	codec *Codec

	Params      audio.Params
	Initialized bool
	Closed      int
	Calls       []Call
}

var errNotReady = errors.New("audiotest: encoder not initialized or closed")

func (e *Encoder) Configure(p audio.Params) error {
	if e.codec.ConfigureErr != nil {
		return e.codec.ConfigureErr
	}

	e.Params = p

	return nil
}

func (e *Encoder) Init() error {
	if e.codec.InitErr != nil {
		return e.codec.InitErr
	}

	e.Initialized = true

	return nil
}

func (e *Encoder) EncodeMono(pcm []int16, frames int, out []byte) (int, error) {
	return e.encode(CallMono, pcm, frames, out)
}

func (e *Encoder) EncodeInterleaved(pcm []int16, frames int, out []byte) (int, error) {
	return e.encode(CallInterleaved, pcm, frames, out)
}

func (e *Encoder) encode(kind CallKind, pcm []int16, frames int, out []byte) (int, error) {
	if !e.Initialized || e.Closed > 0 {
		return 0, errNotReady
	}

	if e.codec.EncodeErr != nil {
		return 0, e.codec.EncodeErr
	}

	call := Call{Kind: kind, Frames: frames}
	if len(pcm) > 0 {
		call.First = pcm[0]
	}

	k := len(e.Calls) + 1
	if !slices.Contains(e.codec.SilentCalls, k) {
		call.Produced = fill(out, byte(k), e.codec.BytesPerCall)
	}

	e.Calls = append(e.Calls, call)

	return call.Produced, nil
}

func (e *Encoder) Flush(out []byte) (int, error) {
	if !e.Initialized || e.Closed > 0 {
		return 0, errNotReady
	}

	if e.codec.FlushErr != nil {
		return 0, e.codec.FlushErr
	}

	n := fill(out, 0xFF, e.codec.FlushBytes)
	e.Calls = append(e.Calls, Call{Kind: CallFlush, Produced: n})

	return n, nil
}

func (e *Encoder) Close() error {
	e.Closed++

	return e.codec.CloseErr
}

// EncodeCalls returns the recorded calls without the flush.
func (e *Encoder) EncodeCalls() []Call {
	var calls []Call
	for _, c := range e.Calls {
		if c.Kind != CallFlush {
			calls = append(calls, c)
		}
	}

	return calls
}

// Flushes counts the recorded flush calls.
func (e *Encoder) Flushes() int {
	n := 0
	for _, c := range e.Calls {
		if c.Kind == CallFlush {
			n++
		}
	}

	return n
}

func fill(out []byte, v byte, n int) int {
	n = min(n, len(out))
	for i := range n {
		out[i] = v
	}

	return n
}
