package ringqueue

// Stats is a point-in-time view of a queue's control fields.
type Stats struct {
	Capacity    int // fixed maximum number of elements
	Available   int // elements ready to be read
	Head        int // next slot to be written
	Tail        int // next slot to be read
	ElementSize int // bytes per slot
}

// Free returns the number of elements that can still be enqueued.
func (s Stats) Free() int {
	return s.Capacity - s.Available
}
