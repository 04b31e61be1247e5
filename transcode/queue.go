// SPDX-License-Identifier: EPL-2.0

package transcode

import "sync"

// Queue is the list of paths waiting for a worker. Every pushed path is
// handed to exactly one TryPop caller.
type Queue struct {
	mu    sync.Mutex
	paths []string
}

func NewQueue(paths ...string) *Queue {
	return &Queue{paths: append([]string(nil), paths...)}
}

// Push appends path. It is meant to be called before the workers start.
func (q *Queue) Push(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.paths = append(q.paths, path)
}

// TryPop removes and returns the oldest path. ok is false when the queue
// is empty; there is no blocking variant.
func (q *Queue) TryPop() (path string, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.paths) == 0 {
		return "", false
	}

	path = q.paths[0]
	q.paths[0] = ""
	q.paths = q.paths[1:]

	return path, true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.paths)
}
