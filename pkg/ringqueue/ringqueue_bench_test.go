package ringqueue

import (
	"strconv"
	"testing"
)

// Sink variables to prevent the compiler from eliminating benchmark loops.
var (
	sinkInt  int
	sinkBool bool
)

func BenchmarkQueue_EnqueueDequeue(b *testing.B) {
	q, err := New[int](1024)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()

	var v int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Enqueue(i)
		v, ok = q.Dequeue()
	}
	sinkInt, sinkBool = v, ok
}

func BenchmarkQueue_FullReject(b *testing.B) {
	q, err := New[int](1)
	if err != nil {
		b.Fatal(err)
	}
	q.Enqueue(0)
	b.ReportAllocs()
	b.ResetTimer()

	var ok bool
	for i := 0; i < b.N; i++ {
		ok = q.Enqueue(i)
	}
	sinkBool = ok
}

func BenchmarkBytes_EnqueueDequeue(b *testing.B) {
	for _, size := range []int{8, 64, 512} {
		b.Run("size"+strconv.Itoa(size), func(b *testing.B) {
			q, err := NewBytes(size, 1024)
			if err != nil {
				b.Fatal(err)
			}
			in := make([]byte, size)
			out := make([]byte, size)
			b.SetBytes(int64(size))
			b.ReportAllocs()
			b.ResetTimer()

			var ok bool
			for i := 0; i < b.N; i++ {
				q.Enqueue(in)
				ok = q.Dequeue(out)
			}
			sinkBool = ok
		})
	}
}

