// SPDX-License-Identifier: EPL-2.0

package wav2mp3_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ik5/wav2mp3"
	"github.com/ik5/wav2mp3/audio"
	"github.com/ik5/wav2mp3/formats/wav"
	"github.com/ik5/wav2mp3/internal/audiotest"
	"github.com/ik5/wav2mp3/transcode"
)

type recorder struct {
	mu         sync.Mutex
	status     []string
	discovered []string
	durations  []time.Duration
	converted  map[string]string
	failed     map[string]error
}

func newRecorder() *recorder {
	return &recorder{converted: map[string]string{}, failed: map[string]error{}}
}

func (r *recorder) Status(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = append(r.status, msg)
}

func (r *recorder) Discovered(path string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discovered = append(r.discovered, path)
	r.durations = append(r.durations, d)
}

func (r *recorder) Converted(src, dst string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converted[src] = dst
}

func (r *recorder) Failed(src string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[src] = err
}

func fakeRegistry(c audio.Codec) *audio.Registry {
	r := audio.NewRegistry()
	r.Register(wav2mp3.FormatMP3, c)

	return r
}

func testOptions(t *testing.T) wav2mp3.Options {
	t.Helper()

	opts := wav2mp3.DefaultOptions()
	opts.Workers = 2
	opts.Logger = zaptest.NewLogger(t)

	return opts
}

func TestConvert_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	names := []string{"a.wav", "b.wav", "c.wav"}
	frames := []int{44100 / 4, 44100/2 + 777, 44100 + 1}
	for i, n := range names {
		require.NoError(t, audiotest.WriteSineWAV(filepath.Join(dir, n), 44100, 1, frames[i]))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not audio"), 0o644))

	rec := newRecorder()
	opts := testOptions(t)
	opts.Verify = true
	opts.Reporter = rec

	stats, err := wav2mp3.Convert(dir, opts)
	require.NoError(t, err)
	require.Equal(t, transcode.Stats{Converted: 3}, stats)
	require.Empty(t, rec.failed)

	require.Equal(t, []string{"To be processed:", "Processed:", "Done"}, rec.status)
	require.Len(t, rec.discovered, 3)

	var sizes []int64
	for i, n := range names {
		src := filepath.Join(dir, n)
		dst := strings.TrimSuffix(src, ".wav") + ".mp3"

		require.Equal(t, src, rec.discovered[i])
		want := time.Duration(frames[i]) * time.Second / 44100
		require.InDelta(t, want, rec.durations[i], float64(5*time.Millisecond))
		require.Equal(t, dst, rec.converted[src])

		st, err := os.Stat(dst)
		require.NoError(t, err)
		require.Positive(t, st.Size())
		sizes = append(sizes, st.Size())
	}

	// Longer inputs give longer outputs
	require.Less(t, sizes[0], sizes[1])
	require.Less(t, sizes[1], sizes[2])

	require.NoFileExists(t, filepath.Join(dir, "notes.mp3"))
}

func TestConvert_BadFileDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, audiotest.WriteSineWAV(filepath.Join(dir, "a.wav"), 44100, 1, 1000))
	require.NoError(t, audiotest.WriteRawWAV(filepath.Join(dir, "b.wav"), wav.NewPCM16Header(44100, 0, 0), make([]byte, 128)))
	require.NoError(t, audiotest.WriteSineWAV(filepath.Join(dir, "c.wav"), 44100, 1, 1000))

	codec := audiotest.NewCodec()
	rec := newRecorder()
	opts := testOptions(t)
	opts.Registry = fakeRegistry(codec)
	opts.Reporter = rec

	stats, err := wav2mp3.Convert(dir, opts)
	require.NoError(t, err)
	require.Equal(t, transcode.Stats{Converted: 2, Failed: 1}, stats)

	bad := filepath.Join(dir, "b.wav")
	require.Len(t, rec.failed, 1)
	require.ErrorIs(t, rec.failed[bad], wav.ErrMalformedHeader)
	require.NoFileExists(t, filepath.Join(dir, "b.mp3"))

	require.FileExists(t, filepath.Join(dir, "a.mp3"))
	require.FileExists(t, filepath.Join(dir, "c.mp3"))
	require.Len(t, codec.Encoders(), 2)
}

func TestConvert_ConsoleOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, audiotest.WriteSineWAV(filepath.Join(dir, "one.wav"), 8000, 1, 800))
	require.NoError(t, audiotest.WriteSineWAV(filepath.Join(dir, "two.wav"), 8000, 2, 800))

	var out, errOut bytes.Buffer
	opts := testOptions(t)
	opts.Workers = 1
	opts.Registry = fakeRegistry(audiotest.NewCodec())
	opts.Reporter = transcode.NewConsoleReporter(&out, &errOut)

	_, err := wav2mp3.Convert(dir, opts)
	require.NoError(t, err)
	require.Empty(t, errOut.String())

	one, two := filepath.Join(dir, "one.wav"), filepath.Join(dir, "two.wav")
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	require.Equal(t, "To be processed:", lines[0])
	require.True(t, strings.HasPrefix(lines[1], one), lines[1])
	require.True(t, strings.HasPrefix(lines[2], two), lines[2])
	require.Equal(t, "Processed:", lines[3])
	require.Equal(t, one+" -> "+filepath.Join(dir, "one.mp3"), lines[4])
	require.Equal(t, two+" -> "+filepath.Join(dir, "two.mp3"), lines[5])
	require.Equal(t, "Done", lines[6])
}

func TestConvert_EmptyDirectory(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	opts := testOptions(t)
	opts.Reporter = rec

	stats, err := wav2mp3.Convert(t.TempDir(), opts)
	require.NoError(t, err)
	require.Equal(t, transcode.Stats{}, stats)
	require.Equal(t, []string{"To be processed:", "Processed:", "Done"}, rec.status)
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		rec := newRecorder()
		opts := testOptions(t)
		opts.Reporter = rec

		_, err := wav2mp3.Convert(filepath.Join(t.TempDir(), "missing"), opts)
		require.ErrorIs(t, err, os.ErrNotExist)
		require.Empty(t, rec.status)
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		opts := testOptions(t)
		opts.Format = "flac"

		_, err := wav2mp3.Convert(t.TempDir(), opts)
		require.ErrorIs(t, err, wav2mp3.ErrUnknownFormat)
	})

	t.Run("invalid options", func(t *testing.T) {
		t.Parallel()

		opts := testOptions(t)
		opts.Quality = 10

		_, err := wav2mp3.Convert(t.TempDir(), opts)
		require.ErrorIs(t, err, wav2mp3.ErrInvalidOptions)
	})
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*wav2mp3.Options)
		wantErr bool
	}{
		{name: "defaults", modify: func(*wav2mp3.Options) {}},
		{name: "best quality", modify: func(o *wav2mp3.Options) { o.Quality = 0 }},
		{name: "fastest", modify: func(o *wav2mp3.Options) { o.Quality = 9 }},
		{name: "zero workers", modify: func(o *wav2mp3.Options) { o.Workers = 0 }},
		{name: "negative quality", modify: func(o *wav2mp3.Options) { o.Quality = -1 }, wantErr: true},
		{name: "quality too high", modify: func(o *wav2mp3.Options) { o.Quality = 10 }, wantErr: true},
		{name: "negative block", modify: func(o *wav2mp3.Options) { o.IOBlockBytes = -1 }, wantErr: true},
		{name: "no format", modify: func(o *wav2mp3.Options) { o.Format = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := wav2mp3.DefaultOptions()
			tt.modify(&opts)

			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	c, ok := wav2mp3.DefaultRegistry().Get(wav2mp3.FormatMP3)
	require.True(t, ok)
	require.Equal(t, ".mp3", c.Ext())
}
