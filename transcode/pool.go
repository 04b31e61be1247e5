// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// DefaultWorkers is the number of CPUs, computed once.
var DefaultWorkers = sync.OnceValue(runtime.NumCPU)

// Job processes one queued path.
type Job func(path string) error

// Stats of a pool run.
type Stats struct {
	Converted int
	Failed    int
}

func (s Stats) add(o Stats) Stats {
	return Stats{Converted: s.Converted + o.Converted, Failed: s.Failed + o.Failed}
}

// Pool runs a fixed number of workers over a Queue.
type Pool struct {
	workers int
	queue   *Queue
	job     Job
	log     *zap.Logger
	onError func(path string, err error)
}

type PoolOption func(*Pool)

func WithLogger(l *zap.Logger) PoolOption {
	return func(p *Pool) { p.log = l }
}

// WithErrorHandler sets the function called with every failed path. It is
// called from the worker goroutines.
func WithErrorHandler(fn func(path string, err error)) PoolOption {
	return func(p *Pool) { p.onError = fn }
}

// NewPool returns a pool of workers goroutines; workers < 1 means
// DefaultWorkers().
func NewPool(workers int, q *Queue, job Job, opts ...PoolOption) *Pool {
	if workers < 1 {
		workers = DefaultWorkers()
	}

	p := &Pool{
		workers: workers,
		queue:   q,
		job:     job,
		log:     zap.NewNop(),
		onError: func(string, error) {},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Pool) Workers() int { return p.workers }

// Run starts the workers and blocks until the queue is drained and every
// worker has returned. A failed job does not stop its worker.
func (p *Pool) Run() Stats {
	results := make([]Stats, p.workers)

	var wg sync.WaitGroup
	for i := range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = p.work(i)
		}()
	}
	wg.Wait()

	var total Stats
	for _, r := range results {
		total = total.add(r)
	}

	return total
}

func (p *Pool) work(id int) Stats {
	log := p.log.With(zap.Int("worker", id))
	log.Debug("worker started")

	var st Stats
	for {
		path, ok := p.queue.TryPop()
		if !ok {
			log.Debug("worker done", zap.Int("converted", st.Converted), zap.Int("failed", st.Failed))
			return st
		}

		if err := p.run(path); err != nil {
			st.Failed++
			// The error handler owns user facing failure output
			log.Debug("job failed", zap.String("path", path), zap.Error(err))
			p.onError(path, err)

			continue
		}

		st.Converted++
	}
}

func (p *Pool) run(path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return p.job(path)
}
