package shardedring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityOne(t *testing.T) {
	q, err := New[int](1)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Capacity())

	require.True(t, q.Enqueue(1))
	assert.False(t, q.Enqueue(2), "second write must not overwrite the unread element")
	assert.Equal(t, 1, q.Available())

	v, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = q.Dequeue()
	assert.False(t, ok)

	require.True(t, q.Enqueue(3))
	v, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 0, q.Available())
}

func TestWraparound(t *testing.T) {
	const capacity = 3
	q, err := New[int](capacity)
	require.NoError(t, err)

	next, want := 0, 0
	for round := 0; round < 20; round++ {
		for q.Available() < capacity {
			require.True(t, q.Enqueue(next))
			next++
		}
		assert.False(t, q.Enqueue(-1))
		v, ok := q.Dequeue()
		require.True(t, ok)
		require.Equal(t, want, v)
		want++
	}
}
