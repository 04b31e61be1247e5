// SPDX-License-Identifier: EPL-2.0

// Command wav2mp3 converts every WAV file in a directory to MP3.
//
//	wav2mp3 [options] <wav directory>
//
// Files that fail are reported on stderr and skipped; the exit status is
// only non-zero for bad usage or a directory that cannot be read.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ik5/wav2mp3"
	"github.com/ik5/wav2mp3/internal/logging"
	"github.com/ik5/wav2mp3/transcode"
)

const (
	flagWorkers  = "workers"
	flagQuality  = "quality"
	flagVerify   = "verify"
	flagLogLevel = "log-level"
	flagDevLog   = "dev-log"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if err := newApp(stdout, stderr).Run(args); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	return 0
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "wav2mp3",
		Usage:           "convert the WAV files of a directory to MP3",
		ArgsUsage:       "<wav directory>",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		// Errors are printed by run, which also picks the exit status
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    flagWorkers,
				Aliases: []string{"w"},
				Usage:   "number of files converted at once",
				Value:   transcode.DefaultWorkers(),
				EnvVars: []string{"WAV2MP3_WORKERS"},
			},
			&cli.IntFlag{
				Name:    flagQuality,
				Aliases: []string{"q"},
				Usage:   "encoder quality, 0 (best) to 9 (fastest)",
				Value:   wav2mp3.DefaultQuality,
				EnvVars: []string{"WAV2MP3_QUALITY"},
			},
			&cli.BoolFlag{
				Name:    flagVerify,
				Usage:   "decode every MP3 after writing it and fail it if it does not decode",
				EnvVars: []string{"WAV2MP3_VERIFY"},
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "debug, info, warn or error",
				Value:   logging.DefaultLevel,
				EnvVars: []string{"WAV2MP3_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    flagDevLog,
				Usage:   "human readable logs instead of JSON",
				EnvVars: []string{"WAV2MP3_DEV_LOG"},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return wav2mp3.ErrUsage
			}

			logger, err := logging.New(c.String(flagLogLevel), c.Bool(flagDevLog))
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			opts := wav2mp3.DefaultOptions()
			opts.Workers = c.Int(flagWorkers)
			opts.Quality = c.Int(flagQuality)
			opts.Verify = c.Bool(flagVerify)
			opts.Logger = logger
			opts.Reporter = transcode.NewConsoleReporter(c.App.Writer, c.App.ErrWriter)

			dir := c.Args().First()
			stats, err := wav2mp3.Convert(dir, opts)
			if err != nil {
				return err
			}

			logger.Debug("finished", zap.String("dir", dir), zap.Int("failed", stats.Failed))

			return nil
		},
	}
}
