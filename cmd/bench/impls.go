package main

import (
	"encoding/binary"

	"github.com/i5heu/GoRingQueue/internal/queue"
	"github.com/i5heu/GoRingQueue/pkg/buffered"
	"github.com/i5heu/GoRingQueue/pkg/growable"
	"github.com/i5heu/GoRingQueue/pkg/ringqueue"
	"github.com/i5heu/GoRingQueue/pkg/shardedring"
)

// benchQueue is the runtime view of queue.BoundedQueue[int] used to keep
// heterogeneous implementations in one table.
type benchQueue interface {
	Enqueue(int) bool
	Dequeue() (int, bool)
	Available() int
	Capacity() int
}

// Implementation represents a queue implementation.
type Implementation[T any, Q queue.BoundedQueue[T]] struct {
	name        string
	description string
	pkgName     string
	features    []string
	newQueue    func(capacity int) (Q, error)
}

// bytesQueue stores ints in a type-erased ringqueue.Bytes as 8-byte
// little-endian slots.
type bytesQueue struct {
	q *ringqueue.Bytes
}

const intSlot = 8

func newBytesQueue(capacity int) (*bytesQueue, error) {
	q, err := ringqueue.NewBytes(intSlot, capacity)
	if err != nil {
		return nil, err
	}
	return &bytesQueue{q: q}, nil
}

func (b *bytesQueue) Enqueue(v int) bool {
	var buf [intSlot]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return b.q.Enqueue(buf[:])
}

func (b *bytesQueue) Dequeue() (int, bool) {
	var buf [intSlot]byte
	if !b.q.Dequeue(buf[:]) {
		return 0, false
	}
	return int(binary.LittleEndian.Uint64(buf[:])), true
}

func (b *bytesQueue) Available() int { return b.q.Available() }
func (b *bytesQueue) Capacity() int  { return b.q.Capacity() }

var _ queue.BoundedQueue[int] = (*bytesQueue)(nil)

// getImplementations enumerates the queues the bench compares.
func getImplementations() []Implementation[int, benchQueue] {
	return []Implementation[int, benchQueue]{
		{
			name:        "RingQueue",
			pkgName:     "ringqueue",
			description: "Generic fixed-capacity ring buffer; count disambiguates full from empty.",
			features:    []string{"FIFO", "Bounded", "Peek", "Exact-Capacity"},
			newQueue: func(capacity int) (benchQueue, error) {
				q, err := ringqueue.New[int](capacity)
				if err != nil {
					return nil, err
				}
				return q, nil
			},
		},
		{
			name:        "RingQueueBytes",
			pkgName:     "ringqueue",
			description: "Type-erased ring buffer with fixed-width byte slots, ints encoded little-endian.",
			features:    []string{"FIFO", "Bounded", "Exact-Capacity"},
			newQueue: func(capacity int) (benchQueue, error) {
				q, err := newBytesQueue(capacity)
				if err != nil {
					return nil, err
				}
				return q, nil
			},
		},
		{
			name:        "BufferedChannel",
			pkgName:     "buffered",
			description: "Go buffered channel used through non-blocking select.",
			features:    []string{"FIFO", "Bounded", "Exact-Capacity"},
			newQueue: func(capacity int) (benchQueue, error) {
				return buffered.New[int](capacity), nil
			},
		},
		{
			name:        "EapacheQueue",
			pkgName:     "growable",
			description: "github.com/eapache/queue with an explicit capacity bound; the ring still grows internally.",
			features:    []string{"FIFO", "Bounded", "Peek", "Exact-Capacity"},
			newQueue: func(capacity int) (benchQueue, error) {
				return growable.New[int](capacity), nil
			},
		},
		{
			name:        "LockFreeRing",
			pkgName:     "shardedring",
			description: "github.com/randomizedcoder/go-lock-free-ring with a single shard.",
			features:    []string{"FIFO", "Bounded", "Exact-Capacity"},
			newQueue: func(capacity int) (benchQueue, error) {
				q, err := shardedring.New[int](capacity)
				if err != nil {
					return nil, err
				}
				return q, nil
			},
		},
	}
}
