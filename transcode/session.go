// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ik5/wav2mp3/audio"
	"github.com/ik5/wav2mp3/formats/wav"
)

// State of a Session.
type State int

const (
	Created State = iota
	Configured
	Streaming
	Flushing
	Closed
	Failed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Configured:
		return "configured"
	case Streaming:
		return "streaming"
	case Flushing:
		return "flushing"
	case Closed:
		return "closed"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// VerifyFunc checks a finished destination file.
type VerifyFunc func(path string, f audio.Format) error

// Options shared by every session of a run.
type Options struct {
	Codec audio.Codec
	// Quality is passed to the encoder unchanged.
	Quality int
	// IOBlockBytes defaults to IOBlockBytes when zero.
	IOBlockBytes int
	// Verify, when set, is called on every non-empty destination file.
	Verify VerifyFunc
	Logger *zap.Logger
}

// Counts of one encode loop.
type Counts struct {
	Chunks int
	Frames int64
	Bytes  int64
}

// Result of a session.
type Result struct {
	Source string
	Dest   string
	Format audio.Format
	Counts
}

// FrameSource is what the encode loop reads from; wav.FrameReader
// implements it.
type FrameSource interface {
	ReadFrames(dst []int16) (int, error)
}

// Session converts one source file. A Session runs once and is not safe
// for concurrent use.
type Session struct {
	src   string
	dst   string
	opts  Options
	log   *zap.Logger
	state State
}

func NewSession(src string, opts Options) *Session {
	if opts.IOBlockBytes == 0 {
		opts.IOBlockBytes = IOBlockBytes
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Session{
		src:  src,
		dst:  DestPath(src, opts.Codec.Ext()),
		opts: opts,
		log:  log.With(zap.String("src", src)),
	}
}

func (s *Session) Source() string { return s.src }
func (s *Session) Dest() string   { return s.dst }
func (s *Session) State() State   { return s.state }

// Run converts the source file into the destination file. The encoder and
// both files are released on every return path. On failure the
// destination file is removed; it is never created when the header or the
// encoder setup fails.
func (s *Session) Run() (res Result, err error) {
	if s.state != Created {
		return res, fmt.Errorf("%w: state %s", ErrState, s.state)
	}

	res.Source, res.Dest = s.src, s.dst

	defer func() {
		if err != nil {
			s.state = Failed
			s.log.Debug("session failed", zap.Error(err))
		}
	}()

	in, err := os.Open(s.src)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer in.Close()

	f, err := readFormat(in)
	if err != nil {
		return res, err
	}
	res.Format = f

	sizes, err := SizeBuffers(s.opts.IOBlockBytes, f)
	if err != nil {
		return res, err
	}

	enc, err := s.openEncoder(f)
	if err != nil {
		return res, err
	}
	encOpen := true
	defer func() {
		if encOpen {
			err = multierr.Append(err, enc.Close())
		}
	}()

	s.state = Configured
	s.log.Debug("configured",
		zap.Int("channels", f.Channels),
		zap.Int("sample_rate", f.SampleRate),
		zap.Int("samples_per_read", sizes.SamplesPerRead),
		zap.Int("output_capacity", sizes.OutputCapacity),
	)

	out, err := os.Create(s.dst)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if out != nil {
			if cerr := out.Close(); cerr != nil {
				err = multierr.Append(err, fmt.Errorf("%w: %w", ErrIO, cerr))
			}
		}

		if err != nil {
			_ = os.Remove(s.dst)
		}
	}()

	w := bufio.NewWriter(out)
	bufs := NewChunkBuffers(sizes)

	s.state = Streaming
	res.Counts, err = EncodeStream(enc, wav.NewFrameReader(in, f), w, bufs, f.Channels)
	if err != nil {
		return res, err
	}

	s.state = Flushing
	n, err := FlushStream(enc, w, bufs.Flush)
	res.Bytes += int64(n)
	if err != nil {
		return res, err
	}

	// The encoder is released before the destination is finalized
	encOpen = false
	if err := enc.Close(); err != nil {
		return res, fmt.Errorf("%w: release: %w", ErrEncode, err)
	}

	if err := w.Flush(); err != nil {
		return res, fmt.Errorf("%w: %w", ErrIO, err)
	}

	cerr := out.Close()
	out = nil
	if cerr != nil {
		return res, fmt.Errorf("%w: %w", ErrIO, cerr)
	}

	if s.opts.Verify != nil && res.Bytes > 0 {
		if err := s.opts.Verify(s.dst, f); err != nil {
			return res, err
		}
	}

	s.state = Closed
	s.log.Debug("closed",
		zap.String("dst", s.dst),
		zap.Int("chunks", res.Chunks),
		zap.Int64("frames", res.Frames),
		zap.Int64("bytes", res.Bytes),
	)

	return res, nil
}

func readFormat(r io.Reader) (audio.Format, error) {
	h, err := wav.ReadHeader(r)
	if err != nil {
		if errors.Is(err, wav.ErrMalformedHeader) {
			return audio.Format{}, err
		}

		return audio.Format{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	f, err := h.PCMFormat()
	if err != nil {
		return audio.Format{}, err
	}

	if err := wav.Supported(f); err != nil {
		return audio.Format{}, err
	}

	return f, nil
}

// openEncoder returns a configured encoder. The caller owns it only when
// err is nil.
func (s *Session) openEncoder(f audio.Format) (audio.Encoder, error) {
	enc, err := s.opts.Codec.NewEncoder()
	if err != nil {
		return nil, initErr(err)
	}

	p := audio.Params{
		Channels:   f.Channels,
		SampleRate: f.SampleRate,
		Mode:       audio.ModeFor(f.Channels),
		Quality:    s.opts.Quality,
	}

	if err := enc.Configure(p); err != nil {
		return nil, multierr.Append(initErr(err), enc.Close())
	}

	if err := enc.Init(); err != nil {
		return nil, multierr.Append(initErr(err), enc.Close())
	}

	return enc, nil
}

func initErr(err error) error {
	if errors.Is(err, audio.ErrEncoderInit) {
		return err
	}

	return fmt.Errorf("%w: %w", audio.ErrEncoderInit, err)
}

// EncodeStream reads chunks of up to len(bufs.Input)/channels frames from
// src, encodes each with the exact number of frames read and writes the
// produced bytes to w in read order. It stops when src has no more frames.
func EncodeStream(enc audio.Encoder, src FrameSource, w io.Writer, bufs *ChunkBuffers, channels int) (Counts, error) {
	var c Counts

	encode := enc.EncodeInterleaved
	if channels == 1 {
		encode = enc.EncodeMono
	}

	for {
		frames, err := src.ReadFrames(bufs.Input)
		if errors.Is(err, io.EOF) {
			return c, nil
		}
		if err != nil {
			return c, fmt.Errorf("%w: %w", ErrIO, err)
		}
		if frames == 0 {
			return c, nil
		}

		c.Chunks++
		c.Frames += int64(frames)

		n, err := encode(bufs.Input, frames, bufs.Output)
		if err != nil {
			return c, fmt.Errorf("%w: chunk %d: %w", ErrEncode, c.Chunks, err)
		}

		// Zero or less means the codec is still buffering
		if n <= 0 {
			continue
		}

		if _, err := w.Write(bufs.Output[:n]); err != nil {
			return c, fmt.Errorf("%w: %w", ErrIO, err)
		}
		c.Bytes += int64(n)
	}
}

// FlushStream flushes the encoder into buf and appends the result to w.
func FlushStream(enc audio.Encoder, w io.Writer, buf []byte) (int, error) {
	n, err := enc.Flush(buf)
	if err != nil {
		return 0, fmt.Errorf("%w: flush: %w", ErrEncode, err)
	}

	if n <= 0 {
		return 0, nil
	}

	if _, err := w.Write(buf[:n]); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return n, nil
}
