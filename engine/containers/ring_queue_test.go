package containers_test

import (
	"testing"

	"github.com/spaghettifunk/math3d/engine/containers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueue(t *testing.T) {
	rq := containers.NewRingQueue[int](3)
	assert.True(t, rq.IsEmpty())

	_, err := rq.Dequeue()
	require.ErrorIs(t, err, containers.ErrQueueEmpty)
	_, err = rq.Peek()
	require.ErrorIs(t, err, containers.ErrQueueEmpty)

	for i := 1; i <= 3; i++ {
		require.NoError(t, rq.Enqueue(i))
	}
	assert.True(t, rq.IsFull())
	require.ErrorIs(t, rq.Enqueue(4), containers.ErrQueueFull)

	front, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, front)

	v, err := rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	require.NoError(t, rq.Enqueue(4))
	assert.Equal(t, []int{2, 3, 4}, rq.Values())
}

func TestRingQueue_Push(t *testing.T) {
	rq := containers.NewRingQueue[string](2)
	rq.Push("a")
	rq.Push("b")
	rq.Push("c")
	assert.Equal(t, 2, rq.Len())
	assert.Equal(t, []string{"b", "c"}, rq.Values())

	empty := containers.NewRingQueue[string](0)
	empty.Push("x")
	assert.Equal(t, 0, empty.Len())
}
