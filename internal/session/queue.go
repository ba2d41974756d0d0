package session

import (
	"sync"

	"github.com/roach88/airdb/internal/event"
)

// request is one decoded input line, or the reason it could not be decoded.
type request struct {
	line int
	in   event.Inbound
	err  error
}

// inbox is a thread-safe unbounded FIFO of requests.
//
// The reader goroutine enqueues; the Run loop dequeues. A buffered signal
// channel of size 1 lets the Run loop wait with a select on its context.
type inbox struct {
	mu       sync.Mutex
	requests []request
	closed   bool
	signal   chan struct{}
}

func newInbox() *inbox {
	return &inbox{
		requests: make([]request, 0, 16),
		signal:   make(chan struct{}, 1),
	}
}

// Enqueue adds r to the back of the queue.
// Returns false if the queue is closed.
func (q *inbox) Enqueue(r request) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.requests = append(q.requests, r)

	// Non-blocking: the buffer of 1 coalesces signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// TryDequeue removes the front request without blocking.
func (q *inbox) TryDequeue() (request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.requests) == 0 {
		return request{}, false
	}

	r := q.requests[0]
	q.requests[0] = request{} // release the event for GC

	if len(q.requests) == 1 {
		q.requests = q.requests[:0]
	} else {
		q.requests = q.requests[1:]
	}

	return r, true
}

// Wait returns a channel that fires when requests may be available, and is
// closed once the queue is closed.
func (q *inbox) Wait() <-chan struct{} {
	return q.signal
}

// Drained reports whether the queue is closed and empty.
func (q *inbox) Drained() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed && len(q.requests) == 0
}

// Len returns the current queue length.
func (q *inbox) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.requests)
}

// Close stops further enqueues and wakes any waiter. Safe to call twice.
func (q *inbox) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.signal)
}
