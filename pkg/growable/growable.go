package growable

import (
	"github.com/eapache/queue"
)

// Queue bounds an eapache/queue, which grows its ring on demand, to a fixed
// capacity so it can stand in for the ring queue in comparisons.
type Queue[T any] struct {
	q        *queue.Queue
	capacity int
}

// New returns a queue that accepts at most capacity elements (minimum 1).
func New[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[T]{
		q:        queue.New(),
		capacity: capacity,
	}
}

func (g *Queue[T]) Enqueue(val T) bool {
	if g.q.Length() >= g.capacity {
		return false
	}
	g.q.Add(val)
	return true
}

func (g *Queue[T]) Dequeue() (T, bool) {
	if g.q.Length() == 0 {
		var zero T
		return zero, false
	}
	return g.q.Remove().(T), true
}

// Peek returns the oldest element without removing it.
func (g *Queue[T]) Peek() (T, bool) {
	if g.q.Length() == 0 {
		var zero T
		return zero, false
	}
	return g.q.Peek().(T), true
}

func (g *Queue[T]) Available() int {
	return g.q.Length()
}

func (g *Queue[T]) Capacity() int {
	return g.capacity
}
