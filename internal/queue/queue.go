// Package queue provides an unbounded FIFO queue for passing values from one
// goroutine to another.
package queue

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrDeliveryFailed is returned by Send when the value can never be
	// received: the receiver has gone away, or the senders said they were done.
	ErrDeliveryFailed = errors.New("queue receiver is gone")

	// ErrClosed is returned by Receive once senders are done and every value
	// has been received.
	ErrClosed = errors.New("queue is closed")
)

// Queue is an unbounded first in first out queue. Any number of goroutines
// may send. One goroutine receives.
//
// Sends never block. Values are received in the order they were sent.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T

	// Closed when there is something new to look at: a value, or a change in
	// state. Replaced each time it is closed.
	notify chan struct{}

	sendClosed    bool
	receiveClosed bool
}

// New creates a Queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{notify: make(chan struct{})}
}

// wake tells a waiting receiver to look again. mu must be held.
func (q *Queue[T]) wake() {
	close(q.notify)
	q.notify = make(chan struct{})
}

// Send adds a value to the end of the queue.
func (q *Queue[T]) Send(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.receiveClosed || q.sendClosed {
		return ErrDeliveryFailed
	}

	q.items = append(q.items, v)
	q.wake()
	return nil
}

// Receive removes and returns the value at the front of the queue, waiting
// for one if the queue is empty.
//
// It returns ErrClosed if CloseSend was called and the queue is drained, and
// the context's error if the context ends first.
func (q *Queue[T]) Receive(ctx context.Context) (T, error) {
	for {
		q.mu.Lock()
		if v, ok := q.pop(); ok {
			q.mu.Unlock()
			return v, nil
		}

		var zero T
		if q.sendClosed || q.receiveClosed {
			q.mu.Unlock()
			return zero, ErrClosed
		}

		notify := q.notify
		q.mu.Unlock()

		select {
		case <-notify:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// TryReceive removes and returns the value at the front of the queue if there
// is one. It does not wait.
func (q *Queue[T]) TryReceive() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pop()
}

// pop removes the front value. mu must be held.
func (q *Queue[T]) pop() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}

	v := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return v, true
}

// Len returns how many values are waiting.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// CloseSend says no more values will be sent. The receiver still gets the
// values already queued, then ErrClosed.
func (q *Queue[T]) CloseSend() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.sendClosed {
		return
	}
	q.sendClosed = true
	q.wake()
}

// CloseReceive says the receiver is gone. Queued values are dropped and any
// further Send fails.
func (q *Queue[T]) CloseReceive() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.receiveClosed {
		return
	}
	q.receiveClosed = true
	q.items = nil
	q.wake()
}
