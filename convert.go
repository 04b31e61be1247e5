// SPDX-License-Identifier: EPL-2.0

package wav2mp3

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/wav2mp3/audio"
	"github.com/ik5/wav2mp3/formats/mp3"
	"github.com/ik5/wav2mp3/formats/wav"
	"github.com/ik5/wav2mp3/transcode"
)

const (
	// SourceExt is the extension of the files picked up from the directory.
	SourceExt = ".wav"

	// DefaultQuality is the encoder quality used when none is given; 0 is
	// best and 9 fastest.
	DefaultQuality = 3

	FormatMP3 = "mp3"
)

// Options for Convert. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	// Workers is the number of files converted at once. Values below 1
	// use one worker per CPU.
	Workers int
	Quality int
	// Format selects the codec from Registry.
	Format string
	// Verify decodes every produced file and fails it when it does not
	// decode at the source sample rate.
	Verify       bool
	IOBlockBytes int

	Registry *audio.Registry
	Reporter transcode.Reporter
	Logger   *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Workers:      transcode.DefaultWorkers(),
		Quality:      DefaultQuality,
		Format:       FormatMP3,
		IOBlockBytes: transcode.IOBlockBytes,
	}
}

func (o Options) Validate() error {
	if o.Quality < 0 || o.Quality > 9 {
		return fmt.Errorf("%w: quality %d is outside 0..9", ErrInvalidOptions, o.Quality)
	}

	if o.IOBlockBytes < 0 {
		return fmt.Errorf("%w: negative read block size %d", ErrInvalidOptions, o.IOBlockBytes)
	}

	if o.Format == "" {
		return fmt.Errorf("%w: no output format", ErrInvalidOptions)
	}

	return nil
}

// DefaultRegistry returns a registry holding the MP3 codec.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(FormatMP3, mp3.Codec{})

	return r
}

// Convert converts every WAV file directly inside dir, writing each output
// next to its source. Per file failures go to the reporter and are counted
// in the returned stats; only an unusable directory or invalid options
// return an error.
func Convert(dir string, opts Options) (transcode.Stats, error) {
	if err := opts.Validate(); err != nil {
		return transcode.Stats{}, err
	}

	if opts.Registry == nil {
		opts.Registry = DefaultRegistry()
	}
	if opts.Reporter == nil {
		opts.Reporter = transcode.NewConsoleReporter(os.Stdout, os.Stderr)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	codec, ok := opts.Registry.Get(opts.Format)
	if !ok {
		return transcode.Stats{}, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	files, err := transcode.Discover(dir, SourceExt)
	if err != nil {
		return transcode.Stats{}, fmt.Errorf("reading %s: %w", dir, err)
	}

	rep := opts.Reporter
	q := transcode.NewQueue()

	rep.Status("To be processed:")
	for _, f := range files {
		rep.Discovered(f, probeDuration(opts.Logger, f))
		q.Push(f)
	}

	sessOpts := transcode.Options{
		Codec:        codec,
		Quality:      opts.Quality,
		IOBlockBytes: opts.IOBlockBytes,
		Logger:       opts.Logger,
	}
	if opts.Verify {
		sessOpts.Verify = verifyMP3
	}

	job := func(path string) error {
		res, err := transcode.NewSession(path, sessOpts).Run()
		if err != nil {
			return err
		}

		rep.Converted(res.Source, res.Dest)

		return nil
	}

	pool := transcode.NewPool(opts.Workers, q, job,
		transcode.WithLogger(opts.Logger),
		transcode.WithErrorHandler(rep.Failed),
	)

	opts.Logger.Debug("starting workers",
		zap.String("dir", dir),
		zap.Int("files", len(files)),
		zap.Int("workers", pool.Workers()),
	)

	rep.Status("Processed:")
	stats := pool.Run()
	rep.Status("Done")

	opts.Logger.Info("conversion finished",
		zap.Int("converted", stats.Converted),
		zap.Int("failed", stats.Failed),
	)

	return stats, nil
}

// probeDuration returns 0 when the file cannot be probed; the session
// reports the real problem later.
func probeDuration(log *zap.Logger, path string) time.Duration {
	info, err := wav.ProbeFile(path)
	if err != nil {
		log.Debug("probe failed", zap.String("path", path), zap.Error(err))
		return 0
	}

	return info.Duration
}

func verifyMP3(path string, f audio.Format) error {
	_, err := mp3.VerifyFile(path, f.SampleRate)

	return err
}
