package ringqueue_test

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/i5heu/GoRingQueue/pkg/ringqueue"
)

func ExampleNew() {
	q, err := ringqueue.New[int](3)
	if err != nil {
		panic(err)
	}
	defer ringqueue.Destroy(&q)

	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)
	fmt.Println("full:", q.IsFull(), "fourth accepted:", q.Enqueue(4))

	head, _ := q.Peek()
	fmt.Println("peek:", head, "available:", q.Available())

	for !q.IsEmpty() {
		v, _ := q.Dequeue()
		fmt.Println(v)
	}
	// Output:
	// full: true fourth accepted: false
	// peek: 1 available: 3
	// 1
	// 2
	// 3
}

func ExampleNewBytes() {
	q, err := ringqueue.NewBytes(8, 2)
	if err != nil {
		panic(err)
	}
	defer ringqueue.DestroyBytes(&q)

	in := make([]byte, 8)
	binary.BigEndian.PutUint64(in, 0xCAFE)
	q.Enqueue(in)

	out := make([]byte, q.ElementSize())
	q.Dequeue(out)
	fmt.Printf("%#x\n", binary.BigEndian.Uint64(out))
	// Output:
	// 0xcafe
}

func ExampleQueue_Stats() {
	var q *ringqueue.Queue[string]
	if _, err := q.Stats(); errors.Is(err, ringqueue.ErrNilQueue) {
		fmt.Println("invalid handle")
	}
	// Output:
	// invalid handle
}
