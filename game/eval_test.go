package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestEvaluate(t *testing.T) {
	t.Run("empty board is balanced", func(t *testing.T) {
		require.Equal(t, 0, Evaluate(NewBoard()))
	})

	t.Run("decided boards return the win sentinel", func(t *testing.T) {
		aiWin := MustParseBoard("OOOOXXX")
		require.Equal(t, WinScore, Evaluate(aiWin))
		require.Equal(t, -WinScore, Evaluate(aiWin.Swap()))
	})

	t.Run("swapping colours negates decided boards", func(t *testing.T) {
		rng := rand.New(rand.NewSource(17))
		for i := 0; i < 300; i++ {
			b := randomBoard(rng, 42)
			if b.Winner() == Empty {
				continue
			}
			require.Equal(t, -Evaluate(b), Evaluate(b.Swap()), "board:\n%s", b)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		rng := rand.New(rand.NewSource(19))
		for i := 0; i < 100; i++ {
			b := randomBoard(rng, rng.Intn(30))
			require.Equal(t, Evaluate(b), Evaluate(b))
		}
	})

	t.Run("single center stone", func(t *testing.T) {
		// Center control 70, center bonus 6 and seven one-stone windows.
		ai := MustParseBoard("...O...")
		require.Equal(t, 83, Evaluate(ai))

		// The opponent pays 1.2x for the pattern and nothing for lone windows.
		require.Equal(t, -90, Evaluate(ai.Swap()))
	})

	t.Run("opponent triples are penalised harder than own triples are rewarded", func(t *testing.T) {
		ai := MustParseBoard("OOO....")
		require.Equal(t, 257, Evaluate(ai))
		require.Equal(t, -435, Evaluate(ai.Swap()))
	})

	t.Run("a double threat triggers the fork pattern for every stone", func(t *testing.T) {
		b := MustParseBoard(".OOO...")
		require.Equal(t, 2, CountWinningMoves(b, AI))
		require.Greater(t, Evaluate(b), 3*Patterns[Fork].Weight)
		require.Less(t, Evaluate(b.Swap()), -3*Patterns[Fork].Weight)
	})
}

func TestPatterns(t *testing.T) {
	t.Run("diagonal needs three in a row", func(t *testing.T) {
		b := MustParseBoard(
			"..O....",
			".OX....",
			"OXX....",
		)
		scan := newPatternScan(b)
		require.True(t, Patterns[Diagonal].detect(scan, 1, 1, AI))

		short := b.With(2, 2, Empty)
		require.False(t, Patterns[Diagonal].detect(newPatternScan(short), 1, 1, AI))
	})

	t.Run("center control covers the lower four rows of the middle column", func(t *testing.T) {
		scan := newPatternScan(NewBoard())
		require.True(t, Patterns[CenterControl].detect(scan, Center, 3, AI))
		require.False(t, Patterns[CenterControl].detect(scan, Center, 4, AI))
		require.False(t, Patterns[CenterControl].detect(scan, 2, 0, AI))
	})

	t.Run("winning columns", func(t *testing.T) {
		b := MustParseBoard(
			"X......",
			"X......",
			"XOOO...",
		)
		require.Equal(t, []int{4}, WinningColumns(b, AI))
		require.Equal(t, []int{0}, WinningColumns(b, Player))
	})
}
