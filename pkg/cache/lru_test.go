package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageFIFO_PushPopOrder(t *testing.T) {
	q := NewPageFIFO()
	q.PushBack(1)
	q.PushBack(2)
	q.PushBack(3)
	require.Equal(t, 3, q.Len())
	require.Equal(t, "1, 2, 3", q.String())

	id, ok := q.PopFront()
	require.True(t, ok)
	require.Equal(t, 1, id)
	require.Equal(t, 2, q.Len())
}

func TestPageFIFO_PopFrontEmpty(t *testing.T) {
	q := NewPageFIFO()
	_, ok := q.PopFront()
	require.False(t, ok)
}

func TestPageFIFO_RemoveFromMiddle(t *testing.T) {
	q := NewPageFIFO()
	q.PushBack(1)
	q.PushBack(2)
	q.PushBack(3)

	q.Remove(2)
	require.False(t, q.Contains(2))
	require.Equal(t, "1, 3", q.String())

	// removing an absent id is a no-op.
	q.Remove(99)
	require.Equal(t, 2, q.Len())
}

func TestPageFIFO_Contains(t *testing.T) {
	q := NewPageFIFO()
	require.False(t, q.Contains(5))
	q.PushBack(5)
	require.True(t, q.Contains(5))
	q.PopFront()
	require.False(t, q.Contains(5))
}
