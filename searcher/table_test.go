package searcher

import (
	"testing"

	"connect4/game"

	"github.com/stretchr/testify/require"
)

func key(depth int) Key {
	return Key{Board: game.NewBoard(), Depth: depth, Maximizing: true}
}

func TestTable(t *testing.T) {
	t.Run("stores and retrieves scores", func(t *testing.T) {
		table := NewTable(10)
		_, ok := table.Get(key(1))
		require.False(t, ok)

		table.Put(key(1), 42)
		score, ok := table.Get(key(1))
		require.True(t, ok)
		require.Equal(t, 42, score)

		other := key(1)
		other.Maximizing = false
		_, ok = table.Get(other)
		require.False(t, ok, "Side to move is part of the key")

		stats := table.Stats()
		require.Equal(t, 1, stats.Size)
		require.EqualValues(t, 1, stats.Hits)
		require.EqualValues(t, 2, stats.Misses)
		require.EqualValues(t, 1, stats.Stores)
	})

	t.Run("evicts the oldest half once over the ceiling", func(t *testing.T) {
		table := NewTable(4)
		for i := 1; i <= 5; i++ {
			table.Put(key(i), i)
		}
		require.Equal(t, 5, table.Len(), "Eviction only triggers once the ceiling is exceeded")

		table.Put(key(6), 6)
		require.Equal(t, 4, table.Len())
		for i := 1; i <= 2; i++ {
			_, ok := table.Get(key(i))
			require.False(t, ok, "key %d should have been evicted", i)
		}
		for i := 3; i <= 6; i++ {
			_, ok := table.Get(key(i))
			require.True(t, ok, "key %d should have survived", i)
		}
		require.EqualValues(t, 2, table.Stats().Evictions)
	})

	t.Run("overwriting keeps the insertion position", func(t *testing.T) {
		table := NewTable(4)
		for i := 1; i <= 4; i++ {
			table.Put(key(i), i)
		}
		table.Put(key(1), 100)
		table.Put(key(5), 5)
		table.Put(key(6), 6)

		_, ok := table.Get(key(1))
		require.False(t, ok, "Refreshed key is still among the oldest")
		score, ok := table.Get(key(5))
		require.True(t, ok)
		require.Equal(t, 5, score)
	})

	t.Run("never grows past ceiling plus one", func(t *testing.T) {
		table := NewTable(7)
		for i := 0; i < 1000; i++ {
			table.Put(key(i), i)
			require.LessOrEqual(t, table.Len(), table.Ceiling()+1)
		}
	})

	t.Run("maintain is a no-op under the ceiling", func(t *testing.T) {
		table := NewTable(4)
		for i := 0; i < 4; i++ {
			table.Put(key(i), i)
		}
		require.Equal(t, 0, table.Maintain())
		table.Put(key(4), 4)
		require.Equal(t, 2, table.Maintain())
		require.Equal(t, 3, table.Len())
	})

	t.Run("clear empties the table", func(t *testing.T) {
		table := NewTable(4)
		table.Put(key(1), 1)
		table.Clear()
		require.Equal(t, 0, table.Len())
		_, ok := table.Get(key(1))
		require.False(t, ok)
	})

	t.Run("rejects a non-positive ceiling", func(t *testing.T) {
		require.Panics(t, func() { NewTable(0) })
	})
}
