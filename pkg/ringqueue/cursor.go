package ringqueue

// cursor tracks the write (head) and read (tail) positions of a ring.
// head == tail holds both when the ring is empty and when it is full,
// so count is the only source of truth for occupancy.
type cursor struct {
	head     int
	tail     int
	count    int
	capacity int
}

func newCursor(capacity int) cursor {
	return cursor{capacity: capacity}
}

func (c *cursor) empty() bool {
	return c.count == 0
}

func (c *cursor) full() bool {
	return c.count == c.capacity
}

// push claims the slot at head and returns its index.
// The caller must have checked full() first.
func (c *cursor) push() int {
	i := c.head
	c.head = (c.head + 1) % c.capacity
	c.count++
	return i
}

// pop releases the slot at tail and returns its index.
// The caller must have checked empty() first.
func (c *cursor) pop() int {
	i := c.tail
	c.tail = (c.tail + 1) % c.capacity
	c.count--
	return i
}

func (c *cursor) peek() int {
	return c.tail
}
