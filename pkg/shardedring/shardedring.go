package shardedring

import (
	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// Queue adapts a single-shard go-lock-free-ring to the bounded queue
// contract. The library does not expose its length, so the adapter
// counts accepted and removed elements itself.
type Queue[T any] struct {
	r        *ring.ShardedRing
	capacity int
	count    int
}

// New returns a queue over a one-shard lock-free ring sized exactly to
// capacity. Enqueue checks count before writing: with a one-slot shard the
// library's sequence check accepts a second Write, which would overwrite the
// unread element.
func New[T any](capacity int) (*Queue[T], error) {
	if capacity < 1 {
		capacity = 1
	}
	r, err := ring.NewShardedRing(uint64(capacity), 1)
	if err != nil {
		return nil, err
	}
	return &Queue[T]{r: r, capacity: capacity}, nil
}

func (s *Queue[T]) Enqueue(val T) bool {
	if s.count >= s.capacity {
		return false
	}
	if !s.r.Write(0, val) {
		return false
	}
	s.count++
	return true
}

func (s *Queue[T]) Dequeue() (T, bool) {
	v, ok := s.r.TryRead()
	if !ok {
		var zero T
		return zero, false
	}
	s.count--
	return v.(T), true
}

func (s *Queue[T]) Available() int {
	return s.count
}

func (s *Queue[T]) Capacity() int {
	return s.capacity
}
