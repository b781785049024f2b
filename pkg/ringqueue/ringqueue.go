package ringqueue

import (
	"fmt"
	"unsafe"

	log "github.com/sirupsen/logrus"
)

// Queue is a bounded FIFO ring buffer of T values.
// The zero value is not usable; create queues with New.
type Queue[T any] struct {
	cur   cursor
	slots []T
	diag  *log.Entry
}

// New creates a queue able to hold capacity elements.
// All storage is allocated here; the queue never grows.
func New[T any](capacity int, opts ...Option) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	var zero T
	if _, err := storageSize(capacity, int(unsafe.Sizeof(zero))); err != nil {
		return nil, err
	}
	slots, err := allocate[T](capacity)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Queue[T]{
		cur:   newCursor(capacity),
		slots: slots,
		diag:  o.logger,
	}, nil
}

// check reports whether q can serve op, logging the reason when it cannot.
func (q *Queue[T]) check(op string) bool {
	if q == nil {
		reject(nil, op, reasonInvalidQueue)
		return false
	}
	if q.slots == nil {
		reject(q.diag, op, reasonClosed)
		return false
	}
	return true
}

// Enqueue copies v into the slot at head.
// Returns false without modifying the queue if it is full or invalid.
func (q *Queue[T]) Enqueue(v T) bool {
	if !q.check("enqueue") {
		return false
	}
	if q.cur.full() {
		reject(q.diag, "enqueue", reasonFull)
		return false
	}
	q.slots[q.cur.push()] = v
	return true
}

// Dequeue removes and returns the oldest element.
// Returns the zero value and false if the queue is empty or invalid.
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if !q.check("dequeue") {
		return zero, false
	}
	if q.cur.empty() {
		reject(q.diag, "dequeue", reasonEmpty)
		return zero, false
	}
	i := q.cur.pop()
	v := q.slots[i]
	// Drop the reference so the slot does not pin v for the GC.
	q.slots[i] = zero
	return v, true
}

// Peek returns the element Dequeue would return next without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	var zero T
	if !q.check("peek") {
		return zero, false
	}
	if q.cur.empty() {
		reject(q.diag, "peek", reasonEmpty)
		return zero, false
	}
	return q.slots[q.cur.peek()], true
}

// IsEmpty reports whether the queue holds no elements.
// A nil or closed queue reports false; see Stats.
func (q *Queue[T]) IsEmpty() bool {
	if !q.check("is_empty") {
		return false
	}
	return q.cur.empty()
}

// IsFull reports whether the queue holds Capacity elements.
// A nil or closed queue reports false; see Stats.
func (q *Queue[T]) IsFull() bool {
	if !q.check("is_full") {
		return false
	}
	return q.cur.full()
}

// Available returns the number of elements ready to be dequeued.
// This is occupancy, not free space.
func (q *Queue[T]) Available() int {
	if !q.check("available") {
		return 0
	}
	return q.cur.count
}

// Capacity returns the fixed maximum number of elements.
func (q *Queue[T]) Capacity() int {
	if !q.check("capacity") {
		return 0
	}
	return q.cur.capacity
}

// Stats returns a snapshot of the queue's control state, or ErrNilQueue /
// ErrClosed when the handle is not a live queue.
func (q *Queue[T]) Stats() (Stats, error) {
	if q == nil {
		return Stats{}, ErrNilQueue
	}
	if q.slots == nil {
		return Stats{}, ErrClosed
	}
	var zero T
	return Stats{
		Capacity:    q.cur.capacity,
		Available:   q.cur.count,
		Head:        q.cur.head,
		Tail:        q.cur.tail,
		ElementSize: int(unsafe.Sizeof(zero)),
	}, nil
}

// Close releases the queue's storage. Every later operation fails.
// Closing a closed queue is a no-op.
func (q *Queue[T]) Close() error {
	if q == nil {
		return ErrNilQueue
	}
	q.slots = nil
	q.cur = cursor{}
	return nil
}

// Destroy closes *qp and clears the caller's handle.
// It does nothing if qp or *qp is nil.
func Destroy[T any](qp **Queue[T]) {
	if qp == nil || *qp == nil {
		reject(nil, "destroy", reasonInvalidQueue)
		return
	}
	_ = (*qp).Close()
	*qp = nil
}
