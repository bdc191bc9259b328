package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackIsLIFO(t *testing.T) {
	var s Stack[int]
	assert.True(t, s.IsEmpty())

	s.Push(1)
	s.Push(2)
	s.Push(3)
	require.Equal(t, 3, s.Len())

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, 3, top)

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestStackClear(t *testing.T) {
	var s Stack[string]
	s.Push("a")
	s.Clear()

	assert.True(t, s.IsEmpty())
	_, ok := s.Peek()
	assert.False(t, ok)
}

func TestRemoveRange(t *testing.T) {
	rest, removed := RemoveRange([]int{0, 1, 2, 3, 4}, 1, 3)

	assert.Equal(t, []int{0, 3, 4}, rest)
	assert.Equal(t, []int{1, 2}, removed)
}

func TestIndexOf(t *testing.T) {
	assert.Equal(t, 2, IndexOf([]string{"a", "b", "c"}, "c"))
	assert.Equal(t, -1, IndexOf([]string{"a"}, "z"))
	assert.True(t, Contains([]int{4, 5}, 5))
}
