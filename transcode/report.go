// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Reporter receives the user facing progress of a run. Converted and
// Failed are called from worker goroutines.
type Reporter interface {
	Status(msg string)
	// Discovered is called for every queued file; d is zero when the
	// duration is unknown.
	Discovered(path string, d time.Duration)
	Converted(src, dst string)
	Failed(src string, err error)
}

// ConsoleReporter writes progress to out and failures to errOut.
type ConsoleReporter struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

func NewConsoleReporter(out, errOut io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out, errOut: errOut}
}

func (r *ConsoleReporter) Status(msg string) {
	r.print(r.out, "%s\n", msg)
}

func (r *ConsoleReporter) Discovered(path string, d time.Duration) {
	if d > 0 {
		r.print(r.out, "%s (%s)\n", path, d.Round(time.Millisecond))
		return
	}

	r.print(r.out, "%s\n", path)
}

func (r *ConsoleReporter) Converted(src, dst string) {
	r.print(r.out, "%s -> %s\n", src, dst)
}

func (r *ConsoleReporter) Failed(src string, err error) {
	r.print(r.errOut, "error: %s: %v\n", src, err)
}

func (r *ConsoleReporter) print(w io.Writer, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(w, format, args...)
}
