package agent

import (
	"context"
	"testing"
	"time"

	"connect4/game"
	"connect4/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		level        int
		maxDepth     int
		randomFactor float64
		lookahead    int
		trapWeight   float64
		budget       time.Duration
	}{
		{level: 1, maxDepth: 2, randomFactor: 0.35, lookahead: 1, budget: 900 * time.Millisecond},
		{level: 2, maxDepth: 3, randomFactor: 0.2, lookahead: 2, budget: time.Second},
		{level: 3, maxDepth: 5, randomFactor: 0.08, lookahead: 3, budget: 1100 * time.Millisecond},
		{level: 4, maxDepth: 6, randomFactor: 0.03, lookahead: 4, trapWeight: 1.3, budget: 1200 * time.Millisecond},
		{level: 5, maxDepth: 6, randomFactor: 0, lookahead: 5, trapWeight: 1.5, budget: 600 * time.Millisecond},
	}
	for _, tt := range tests {
		tier := TierFor(tt.level)
		require.Equal(t, tt.level, tier.Level)
		require.Equal(t, tt.maxDepth, tier.MaxDepth)
		require.Equal(t, tt.randomFactor, tier.RandomFactor)
		require.Equal(t, tt.lookahead, tier.Lookahead)
		require.Equal(t, tt.trapWeight, tier.TrapWeight)
		require.Equal(t, tt.budget, tier.Budget())
	}

	t.Run("unknown levels resolve to tier 3", func(t *testing.T) {
		for _, level := range []int{0, -1, 6, 99} {
			require.Equal(t, TierFor(3), TierFor(level))
		}
	})

	t.Run("tiers are ordered by strength", func(t *testing.T) {
		all := Tiers()
		require.Len(t, all, 5)
		for i, tier := range all {
			require.Equal(t, i+1, tier.Level)
		}
	})
}

func newAgent(seed uint64) Agent {
	return NewTieredAgent(searcher.NewTable(4096), WithSeed(seed))
}

func TestFindMove(t *testing.T) {
	ctx := context.Background()

	t.Run("every tier completes four in a row", func(t *testing.T) {
		b := game.MustParseBoard(
			"XX.....",
			"OOO.X..",
		)
		for _, tier := range Tiers() {
			for seed := uint64(0); seed < 20; seed++ {
				decision := newAgent(seed).FindMove(ctx, b, tier)
				require.Equal(t, 3, decision.Column)
				require.Equal(t, LayerWin, decision.Layer)
			}
		}
	})

	t.Run("strong tiers always block", func(t *testing.T) {
		b := game.MustParseBoard(
			"OO.....",
			"XXX....",
		)
		for _, level := range []int{3, 4, 5} {
			for seed := uint64(0); seed < 20; seed++ {
				decision := newAgent(seed).FindMove(ctx, b, TierFor(level))
				require.Equal(t, 3, decision.Column)
				require.Equal(t, LayerBlock, decision.Layer)
			}
		}
	})

	t.Run("the weakest tier sometimes overlooks a threat", func(t *testing.T) {
		b := game.MustParseBoard(
			"OO.....",
			"XXX....",
		)
		layers := map[Layer]int{}
		for seed := uint64(0); seed < 200; seed++ {
			decision := newAgent(seed).FindMove(ctx, b, TierFor(1))
			require.True(t, b.CanPlay(decision.Column))
			layers[decision.Layer]++
		}
		require.Positive(t, layers[LayerBlock])
		require.Less(t, layers[LayerBlock], 200)
	})

	t.Run("full board has no move", func(t *testing.T) {
		b := game.MustParseBoard(
			"XXOXXOX",
			"OOXOOXO",
			"XXOXXOX",
			"OOXOOXO",
			"XXOXXOX",
			"OOXOOXO",
		)
		decision := newAgent(1).FindMove(ctx, b, TierFor(5))
		require.Equal(t, game.NoMove, decision.Column)
		require.Equal(t, LayerNone, decision.Layer)
	})

	t.Run("weakest tier plays a legal column on an empty board", func(t *testing.T) {
		for seed := uint64(0); seed < 50; seed++ {
			decision := newAgent(seed).FindMove(ctx, game.NewBoard(), TierFor(1))
			require.GreaterOrEqual(t, decision.Column, 0)
			require.Less(t, decision.Column, game.Columns)
			require.Contains(t, []Layer{LayerSearch, LayerDeviation}, decision.Layer)
		}
	})

	t.Run("same seed gives the same decisions", func(t *testing.T) {
		b := game.MustParseBoard("..XO...")
		first, second := newAgent(42), newAgent(42)
		for i := 0; i < 10; i++ {
			require.Equal(t, first.FindMove(ctx, b, TierFor(1)).Column, second.FindMove(ctx, b, TierFor(1)).Column)
		}
	})

	t.Run("search metrics are reported when enabled", func(t *testing.T) {
		a := NewTieredAgent(searcher.NewTable(4096), WithSeed(7), WithMetrics())
		decision := a.FindMove(ctx, game.MustParseBoard("...X..."), TierFor(2))
		require.Contains(t, []Layer{LayerSearch, LayerDeviation}, decision.Layer)
		require.Equal(t, 3, decision.Metrics.MaxDepth)
		require.Positive(t, decision.Metrics.Nodes)
	})
}

func TestDeviate(t *testing.T) {
	t.Run("avoids moves that lose immediately", func(t *testing.T) {
		b := game.MustParseBoard(
			"XX.X...",
			"OX.OX..",
		)
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 200; i++ {
			require.NotEqual(t, 2, deviate(rng, b, b.ValidMoves()))
		}
	})

	t.Run("falls back to any move when all of them lose", func(t *testing.T) {
		b := game.MustParseBoard(
			"XX.X...",
			"OX.OX..",
		)
		rng := rand.New(rand.NewSource(3))
		require.Equal(t, 2, deviate(rng, b, []int{2}))
	})
}
