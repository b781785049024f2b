package testbench

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/i5heu/GoRingQueue/internal/queue"
)

// Workload is how many producers and consumers share one queue.
type Workload struct {
	NumProducers int `yaml:"producers" json:"producers"`
	NumConsumers int `yaml:"consumers" json:"consumers"`
}

// Result is what one timed run observed.
type Result struct {
	Produced int64
	Consumed int64
	// Rejected counts enqueues refused because the queue was full.
	Rejected int64
	Elapsed  time.Duration
}

// RunTimedTest spawns producers and consumers that run for the specified
// duration against q. The queues under test are not safe for concurrent
// use, so every call is made while holding mu; this is the external
// synchronisation the caller owes the queue. Once the deadline passes,
// producers stop and consumers drain whatever is left.
func RunTimedTest[T any, Q queue.BoundedQueue[T]](
	q Q,
	mu sync.Locker,
	wl Workload,
	testDuration time.Duration,
	valueGenerator func(int) T,
) Result {
	ctx, cancel := context.WithTimeout(context.Background(), testDuration)
	defer cancel()

	var produced, consumed, rejected int64
	var msgIndex int64

	// productionDone flips to 1 once the deadline passes.
	var productionDone int32
	go func() {
		<-ctx.Done()
		atomic.StoreInt32(&productionDone, 1)
	}()

	enqueue := func(v T) bool {
		mu.Lock()
		defer mu.Unlock()
		return q.Enqueue(v)
	}
	dequeue := func() bool {
		mu.Lock()
		defer mu.Unlock()
		_, ok := q.Dequeue()
		return ok
	}

	start := time.Now()

	var prodWg sync.WaitGroup
	prodWg.Add(wl.NumProducers)
	for i := 0; i < wl.NumProducers; i++ {
		go func() {
			defer prodWg.Done()
			for atomic.LoadInt32(&productionDone) == 0 {
				idx := atomic.AddInt64(&msgIndex, 1) - 1
				msg := valueGenerator(int(idx))
				for !enqueue(msg) {
					atomic.AddInt64(&rejected, 1)
					if atomic.LoadInt32(&productionDone) == 1 {
						return
					}
					runtime.Gosched()
				}
				atomic.AddInt64(&produced, 1)
			}
		}()
	}

	var consWg sync.WaitGroup
	consWg.Add(wl.NumConsumers)
	for i := 0; i < wl.NumConsumers; i++ {
		go func() {
			defer consWg.Done()
			for {
				if atomic.LoadInt32(&productionDone) == 1 {
					// Producers may still be finishing a push; wait for them
					// before the final drain.
					prodWg.Wait()
					for dequeue() {
						atomic.AddInt64(&consumed, 1)
					}
					return
				}
				if dequeue() {
					atomic.AddInt64(&consumed, 1)
				} else {
					runtime.Gosched()
				}
			}
		}()
	}

	<-ctx.Done()
	prodWg.Wait()
	consWg.Wait()

	return Result{
		Produced: atomic.LoadInt64(&produced),
		Consumed: atomic.LoadInt64(&consumed),
		Rejected: atomic.LoadInt64(&rejected),
		Elapsed:  time.Since(start),
	}
}
