package ringqueue

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		wantErr  error
	}{
		{"zero capacity", 0, ErrInvalidCapacity},
		{"negative capacity", -1, ErrInvalidCapacity},
		{"single slot", 1, nil},
		{"typical", 5, nil},
		{"large", 10000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := New[int](tt.capacity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, q)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, q)
			assert.Equal(t, tt.capacity, q.Capacity())
			assert.Equal(t, 0, q.Available())
			assert.True(t, q.IsEmpty())

			st, err := q.Stats()
			require.NoError(t, err)
			assert.Equal(t, 0, st.Head)
			assert.Equal(t, 0, st.Tail)
		})
	}
}

func TestNew_Allocation(t *testing.T) {
	q, err := New[int64](math.MaxInt)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Nil(t, q)

	if strconv.IntSize < 64 {
		t.Skip("out-of-range make needs a 64-bit int")
	}
	// Fits in an int but exceeds what the runtime will ever hand out.
	q, err = New[int64](math.MaxInt / 16)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Nil(t, q)
}

// Capacity-5 integer scenario: fill, reject, then interleave reads.
func TestQueue_Scenario(t *testing.T) {
	q, err := New[int](5)
	require.NoError(t, err)

	for _, v := range []int{10, 20, 30, 40, 50} {
		require.True(t, q.Enqueue(v), "enqueue %d", v)
	}
	assert.Equal(t, 5, q.Available())
	assert.True(t, q.IsFull())

	assert.False(t, q.Enqueue(60))
	assert.Equal(t, 5, q.Available())

	v, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, 4, q.Available())

	v, ok = q.Peek()
	require.True(t, ok)
	assert.Equal(t, 20, v)
	assert.Equal(t, 4, q.Available())

	v, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 20, v)
	v, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 30, v)
	assert.Equal(t, 2, q.Available())
}

func TestQueue_FullEmpty(t *testing.T) {
	const capacity = 4
	q, err := New[string](capacity)
	require.NoError(t, err)

	_, ok := q.Dequeue()
	assert.False(t, ok, "dequeue on empty queue")
	_, ok = q.Peek()
	assert.False(t, ok, "peek on empty queue")

	for i := 0; i < capacity; i++ {
		require.True(t, q.Enqueue("item"))
	}
	assert.True(t, q.IsFull())
	assert.False(t, q.IsEmpty())

	st, err := q.Stats()
	require.NoError(t, err)
	assert.Equal(t, st.Head, st.Tail, "head meets tail when full")
	assert.Equal(t, 0, st.Free())

	assert.False(t, q.Enqueue("overflow"))
	assert.Equal(t, capacity, q.Available())

	for i := 0; i < capacity; i++ {
		_, ok := q.Dequeue()
		require.True(t, ok)
	}
	assert.True(t, q.IsEmpty())
	assert.False(t, q.IsFull())

	st, err = q.Stats()
	require.NoError(t, err)
	assert.Equal(t, st.Head, st.Tail, "head meets tail when empty")

	_, ok = q.Dequeue()
	assert.False(t, ok)
}

func TestQueue_Wraparound(t *testing.T) {
	const capacity = 4
	q, err := New[int](capacity)
	require.NoError(t, err)

	next, want := 0, 0
	for cycle := 0; cycle < 3; cycle++ {
		for !q.IsFull() {
			require.True(t, q.Enqueue(next))
			next++
		}
		// Partial drain so head and tail wrap at different times.
		for i := 0; i < 2; i++ {
			got, ok := q.Dequeue()
			require.True(t, ok)
			assert.Equal(t, want, got, "cycle %d", cycle)
			want++
		}
	}
	for !q.IsEmpty() {
		got, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, want, got)
		want++
	}
	assert.Equal(t, next, want)
}

func TestQueue_PeekIdempotent(t *testing.T) {
	q, err := New[int](3)
	require.NoError(t, err)
	require.True(t, q.Enqueue(7))
	require.True(t, q.Enqueue(8))

	for i := 0; i < 10; i++ {
		v, ok := q.Peek()
		require.True(t, ok)
		assert.Equal(t, 7, v)
		assert.Equal(t, 2, q.Available())
	}
}

// TestQueue_RandomOps checks occupancy bounds and FIFO order against a
// slice model over a random operation sequence.
func TestQueue_RandomOps(t *testing.T) {
	const capacity = 7
	q, err := New[int](capacity)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	var model []int
	for i := 0; i < 10000; i++ {
		switch rng.Intn(3) {
		case 0:
			ok := q.Enqueue(i)
			assert.Equal(t, len(model) < capacity, ok)
			if ok {
				model = append(model, i)
			}
		case 1:
			v, ok := q.Dequeue()
			require.Equal(t, len(model) > 0, ok)
			if ok {
				require.Equal(t, model[0], v)
				model = model[1:]
			}
		case 2:
			v, ok := q.Peek()
			require.Equal(t, len(model) > 0, ok)
			if ok {
				require.Equal(t, model[0], v)
			}
		}
		n := q.Available()
		require.Equal(t, len(model), n)
		require.GreaterOrEqual(t, n, 0)
		require.LessOrEqual(t, n, q.Capacity())
	}
}

func TestQueue_DequeueReleasesSlot(t *testing.T) {
	q, err := New[*int](2)
	require.NoError(t, err)
	v := 1
	require.True(t, q.Enqueue(&v))
	_, ok := q.Dequeue()
	require.True(t, ok)
	assert.Nil(t, q.slots[0])
}

func TestQueue_NilHandle(t *testing.T) {
	var q *Queue[int]

	assert.False(t, q.Enqueue(1))
	_, ok := q.Dequeue()
	assert.False(t, ok)
	_, ok = q.Peek()
	assert.False(t, ok)
	assert.False(t, q.IsEmpty())
	assert.False(t, q.IsFull())
	assert.Equal(t, 0, q.Available())
	assert.Equal(t, 0, q.Capacity())

	_, err := q.Stats()
	assert.ErrorIs(t, err, ErrNilQueue)
	assert.ErrorIs(t, q.Close(), ErrNilQueue)
}

func TestQueue_CloseAndDestroy(t *testing.T) {
	q, err := New[int](3)
	require.NoError(t, err)
	require.True(t, q.Enqueue(1))

	alias := q
	Destroy(&q)
	assert.Nil(t, q)

	// A stale copy of the handle sees a closed queue.
	assert.False(t, alias.Enqueue(2))
	_, ok := alias.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, 0, alias.Capacity())
	_, err = alias.Stats()
	assert.True(t, errors.Is(err, ErrClosed))

	assert.NoError(t, alias.Close(), "closing twice is a no-op")

	// Destroying an already cleared handle does nothing.
	Destroy(&q)
	Destroy[int](nil)
	assert.Nil(t, q)
}

func TestQueue_Diagnostics(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	q, err := New[int](1, WithLogger(logger))
	require.NoError(t, err)

	require.True(t, q.Enqueue(1))
	assert.Empty(t, hook.AllEntries(), "successful operations are silent")

	assert.False(t, q.Enqueue(2))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "enqueue", hook.LastEntry().Data["op"])
	assert.Equal(t, reasonFull, hook.LastEntry().Data["reason"])

	_, _ = q.Dequeue()
	_, ok := q.Peek()
	assert.False(t, ok)
	assert.Equal(t, "peek", hook.LastEntry().Data["op"])
	assert.Equal(t, reasonEmpty, hook.LastEntry().Data["reason"])

	alias := q
	Destroy(&q)
	hook.Reset()
	assert.False(t, alias.Enqueue(3))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, reasonClosed, hook.LastEntry().Data["reason"])
	_, ok = alias.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, "dequeue", hook.LastEntry().Data["op"])
	assert.Equal(t, reasonClosed, hook.LastEntry().Data["reason"])
}

func TestSetDiagnostics(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	SetDiagnostics(logger)
	defer SetDiagnostics(nil)

	var q *Queue[int]
	assert.False(t, q.Enqueue(1))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, reasonInvalidQueue, hook.LastEntry().Data["reason"])
	assert.Equal(t, "ringqueue", hook.LastEntry().Data["component"])

	// Diagnostics never change outcomes: debug disabled gives the same answer.
	logger.SetLevel(log.InfoLevel)
	hook.Reset()
	assert.False(t, q.Enqueue(1))
	assert.Empty(t, hook.AllEntries())
}
