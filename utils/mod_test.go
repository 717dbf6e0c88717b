package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceHelpers(t *testing.T) {
	moves := []int{3, 2, 4, 1}

	require.Equal(t, 2, FindIndex(moves, 4))
	require.Equal(t, -1, FindIndex(moves, 6))
	require.True(t, Contains(moves, 1))
	require.False(t, Contains(moves, 0))
	require.False(t, Contains([]int(nil), 0))

	even := Filter(moves, func(m int) bool { return m%2 == 0 })
	require.Equal(t, []int{2, 4}, even)
	require.Empty(t, Filter(moves, func(int) bool { return false }))
}
