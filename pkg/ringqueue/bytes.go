package ringqueue

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Bytes is a bounded FIFO ring buffer of fixed-width byte elements.
// Every slot is exactly ElementSize bytes wide and lives in one contiguous
// block allocated by NewBytes.
type Bytes struct {
	cur      cursor
	elemSize int
	mem      []byte
	diag     *log.Entry
}

// NewBytes creates a queue of capacity slots, each elemSize bytes wide.
func NewBytes(elemSize, capacity int, opts ...Option) (*Bytes, error) {
	if elemSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidElementSize, elemSize)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	size, err := storageSize(capacity, elemSize)
	if err != nil {
		return nil, err
	}
	mem, err := allocate[byte](size)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	return &Bytes{
		cur:      newCursor(capacity),
		elemSize: elemSize,
		mem:      mem,
		diag:     o.logger,
	}, nil
}

func (q *Bytes) check(op string) bool {
	if q == nil {
		reject(nil, op, reasonInvalidQueue)
		return false
	}
	if q.mem == nil {
		reject(q.diag, op, reasonClosed)
		return false
	}
	return true
}

func (q *Bytes) slot(i int) []byte {
	off := i * q.elemSize
	return q.mem[off : off+q.elemSize]
}

// Enqueue copies ele into the slot at head. ele must be exactly
// ElementSize bytes long; a nil or mis-sized ele is rejected.
func (q *Bytes) Enqueue(ele []byte) bool {
	if !q.check("enqueue") {
		return false
	}
	if ele == nil || len(ele) != q.elemSize {
		reject(q.diag, "enqueue", reasonInvalidElement)
		return false
	}
	if q.cur.full() {
		reject(q.diag, "enqueue", reasonFull)
		return false
	}
	copy(q.slot(q.cur.push()), ele)
	return true
}

// Dequeue copies the oldest element into dst and removes it.
// dst must hold at least ElementSize bytes. On failure dst is untouched.
func (q *Bytes) Dequeue(dst []byte) bool {
	if !q.readable("dequeue", dst) {
		return false
	}
	copy(dst, q.slot(q.cur.pop()))
	return true
}

// Peek copies the oldest element into dst without removing it.
func (q *Bytes) Peek(dst []byte) bool {
	if !q.readable("peek", dst) {
		return false
	}
	copy(dst, q.slot(q.cur.peek()))
	return true
}

func (q *Bytes) readable(op string, dst []byte) bool {
	if !q.check(op) {
		return false
	}
	if dst == nil || len(dst) < q.elemSize {
		reject(q.diag, op, reasonInvalidElement)
		return false
	}
	if q.cur.empty() {
		reject(q.diag, op, reasonEmpty)
		return false
	}
	return true
}

// ElementSize returns the width of one slot in bytes, or 0 for an invalid queue.
func (q *Bytes) ElementSize() int {
	if !q.check("element_size") {
		return 0
	}
	return q.elemSize
}

func (q *Bytes) IsEmpty() bool {
	if !q.check("is_empty") {
		return false
	}
	return q.cur.empty()
}

func (q *Bytes) IsFull() bool {
	if !q.check("is_full") {
		return false
	}
	return q.cur.full()
}

// Available returns the number of elements ready to be dequeued.
func (q *Bytes) Available() int {
	if !q.check("available") {
		return 0
	}
	return q.cur.count
}

func (q *Bytes) Capacity() int {
	if !q.check("capacity") {
		return 0
	}
	return q.cur.capacity
}

// Stats returns a snapshot of the queue's control state, or ErrNilQueue /
// ErrClosed when the handle is not a live queue.
func (q *Bytes) Stats() (Stats, error) {
	if q == nil {
		return Stats{}, ErrNilQueue
	}
	if q.mem == nil {
		return Stats{}, ErrClosed
	}
	return Stats{
		Capacity:    q.cur.capacity,
		Available:   q.cur.count,
		Head:        q.cur.head,
		Tail:        q.cur.tail,
		ElementSize: q.elemSize,
	}, nil
}

// Close releases the backing block. Closing a closed queue is a no-op.
func (q *Bytes) Close() error {
	if q == nil {
		return ErrNilQueue
	}
	q.mem = nil
	q.cur = cursor{}
	return nil
}

// DestroyBytes closes *qp and clears the caller's handle.
func DestroyBytes(qp **Bytes) {
	if qp == nil || *qp == nil {
		reject(nil, "destroy", reasonInvalidQueue)
		return
	}
	_ = (*qp).Close()
	*qp = nil
}
