package queue

import (
	"github.com/i5heu/GoRingQueue/pkg/buffered"
	"github.com/i5heu/GoRingQueue/pkg/growable"
	"github.com/i5heu/GoRingQueue/pkg/ringqueue"
	"github.com/i5heu/GoRingQueue/pkg/shardedring"
)

// BoundedQueue is a *type constraint* shared by every queue the bench drives.
// We never store Q in a runtime interface value inside the testbench;
// the constraint only ensures matching signatures at compile time.
type BoundedQueue[T any] interface {
	// Enqueue adds an element. It must not block: a full queue returns false.
	Enqueue(T) bool

	// Dequeue removes and returns the oldest element.
	// If the queue is empty it returns the zero T and false.
	Dequeue() (T, bool)

	// Available returns how many elements are currently queued.
	Available() int

	// Capacity returns the maximum number of queued elements.
	Capacity() int
}

// Compile-time checks that every implementation satisfies the contract.
var (
	_ BoundedQueue[int] = (*ringqueue.Queue[int])(nil)
	_ BoundedQueue[int] = (*buffered.BufferedQueue[int])(nil)
	_ BoundedQueue[int] = (*growable.Queue[int])(nil)
	_ BoundedQueue[int] = (*shardedring.Queue[int])(nil)
)
