package buffered

// BufferedQueue is a bounded queue backed by a buffered channel.
// It is the standard-library baseline the ring queue is measured against.
type BufferedQueue[T any] struct {
	ch chan T
}

func New[T any](capacity int) *BufferedQueue[T] {
	// A zero-capacity channel is an unbuffered rendezvous, not an empty buffer.
	if capacity < 1 {
		capacity = 1
	}
	return &BufferedQueue[T]{
		ch: make(chan T, capacity),
	}
}

// Enqueue adds val without blocking. Returns false if the channel is full.
func (q *BufferedQueue[T]) Enqueue(val T) bool {
	select {
	case q.ch <- val:
		return true
	default:
		return false
	}
}

func (q *BufferedQueue[T]) Dequeue() (val T, ok bool) {
	select {
	case val = <-q.ch:
		return val, true
	default:
		return val, false
	}
}

func (q *BufferedQueue[T]) Available() int {
	return len(q.ch)
}

func (q *BufferedQueue[T]) Capacity() int {
	return cap(q.ch)
}
