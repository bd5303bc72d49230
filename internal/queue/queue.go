// Package queue holds the hand-off between the tailer and the consumer.
package queue

import (
	"context"
	"sync"
)

// Queue is an unbounded FIFO shared by one or more producers and a single
// consumer that parks in Wait while it is empty.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	head   int
	notify chan struct{}
}

func New[T any]() *Queue[T] {
	return &Queue[T]{notify: make(chan struct{}, 1)}
}

// Push appends items in order and wakes the consumer.
func (q *Queue[T]) Push(items ...T) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, items...)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Pop removes the oldest item. ok is false when nothing is queued.
func (q *Queue[T]) Pop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head == len(q.items) {
		return item, false
	}
	item = q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head++
	q.compact()
	return item, true
}

// Take removes up to max of the oldest items, or all of them when max <= 0.
// The returned slice is owned by the caller.
func (q *Queue[T]) Take(max int) []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items) - q.head
	if n == 0 {
		return nil
	}
	if max > 0 && max < n {
		n = max
	}
	out := make([]T, n)
	copy(out, q.items[q.head:q.head+n])
	clear(q.items[q.head : q.head+n])
	q.head += n
	q.compact()
	return out
}

// compact reclaims the consumed prefix once it dominates the backing array.
// Callers hold mu.
func (q *Queue[T]) compact() {
	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head > 64 && q.head*2 >= len(q.items):
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
}

// Wait blocks until something is queued or ctx is done.
func (q *Queue[T]) Wait(ctx context.Context) error {
	for q.Len() == 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.notify:
		}
	}
	return nil
}

// Len is the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
