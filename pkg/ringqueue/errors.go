package ringqueue

import "errors"

var (
	ErrInvalidCapacity    = errors.New("ringqueue: capacity must be positive")
	ErrInvalidElementSize = errors.New("ringqueue: element size must be positive")
	ErrAllocation         = errors.New("ringqueue: unable to allocate storage")
	ErrNilQueue           = errors.New("ringqueue: nil queue")
	ErrClosed             = errors.New("ringqueue: queue is closed")
)
