package midi

import "sync"

// Inbox is an unbounded single-producer/single-consumer queue between the
// MIDI listener callback and the goroutine that owns a driver. Put never
// blocks on the consumer and Drain never waits for the producer.
type Inbox[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
}

// NewInbox creates an empty, open inbox.
func NewInbox[T any]() *Inbox[T] {
	return &Inbox[T]{}
}

// Put appends v. It returns false, dropping v, once the inbox is closed.
func (q *Inbox[T]) Put(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, v)
	return true
}

// Drain removes and returns everything queued so far, in arrival order.
func (q *Inbox[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}

// Close stops accepting items and drops anything still queued.
func (q *Inbox[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.items = nil
}
