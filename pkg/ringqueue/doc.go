// Package ringqueue provides a fixed-capacity FIFO ring buffer.
//
// Two flavours share the same cursor arithmetic:
//   - Queue[T]: a generic queue whose slots hold values of type T
//   - Bytes: a type-erased queue whose slots are fixed-width byte blocks
//
// All storage is allocated once by the constructor and released by Close
// (or Destroy). Enqueue never overwrites an occupied slot; it fails when the
// queue is full. Dequeue and Peek fail when the queue is empty.
//
// # Concurrency
//
// Queues are NOT safe for concurrent use. Callers sharing a queue between
// goroutines must guard every call with their own lock.
//
// # Invalid handles
//
// The boolean queries (IsEmpty, IsFull, Available, Capacity) answer false or 0
// on a nil or closed queue, which is indistinguishable from some legitimate
// states. Use Stats when the caller needs to tell an invalid handle apart:
// it returns ErrNilQueue or ErrClosed.
package ringqueue
