package gamemaster

import (
	"context"
	"errors"
	"testing"

	"connect4/engine"
	"connect4/game"
	"connect4/player"
	"connect4/searcher/agent"

	"github.com/stretchr/testify/require"
)

// scripted plays a fixed list of columns.
type scripted struct {
	name  string
	moves []int
	err   error
}

func (s *scripted) Name() string { return s.name }

func (s *scripted) ChooseMove(ctx context.Context, board game.Board, cell game.Cell) (player.Move, error) {
	if s.err != nil {
		return player.Move{}, s.err
	}
	col := s.moves[0]
	s.moves = s.moves[1:]
	return player.Move{Column: col}, nil
}

// split deals an alternating sequence out to the two sides.
func split(sequence []int) (first, second []int) {
	for i, col := range sequence {
		if i%2 == 0 {
			first = append(first, col)
		} else {
			second = append(second, col)
		}
	}
	return first, second
}

func TestGameMaster(t *testing.T) {
	ctx := context.Background()

	t.Run("records moves until a win", func(t *testing.T) {
		x := &scripted{name: "x", moves: []int{0, 0, 0, 0}}
		o := &scripted{name: "o", moves: []int{1, 1, 1}}
		var observed []Update
		gm := NewGameMaster(x, o, WithMetrics(), WithObserver(func(u Update) { observed = append(observed, u) }))

		result, err := gm.Run(ctx, game.Player)
		require.NoError(t, err)
		require.Equal(t, game.Player, result.Winner)
		require.Equal(t, game.Player, result.Game.StartingPlayer)
		require.Equal(t, 7, result.Game.TotalMoves)
		require.Len(t, result.Moves, 7)
		require.Equal(t, 1, result.Moves[0].Step)
		require.Equal(t, game.AI, result.Moves[1].Player)
		require.Len(t, observed, 7)
		require.Equal(t, result.Board, observed[6].Board)
	})

	t.Run("full board is a draw", func(t *testing.T) {
		first, second := split(drawSequence)
		gm := NewGameMaster(&scripted{name: "x", moves: first}, &scripted{name: "o", moves: second}, WithMetrics())

		result, err := gm.Run(ctx, game.Player)
		require.NoError(t, err)
		require.Equal(t, game.Empty, result.Winner)
		require.Equal(t, game.Columns*game.Rows, result.Game.TotalMoves)
	})

	t.Run("illegal moves abort the game", func(t *testing.T) {
		gm := NewGameMaster(&scripted{name: "x", moves: []int{7}}, &scripted{name: "o"})
		_, err := gm.Run(ctx, game.Player)
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("player errors abort the game", func(t *testing.T) {
		boom := errors.New("boom")
		gm := NewGameMaster(&scripted{name: "x"}, &scripted{name: "o", err: boom})
		_, err := gm.Run(ctx, game.AI)
		require.ErrorIs(t, err, boom)
	})

	t.Run("top tier beats a random player", func(t *testing.T) {
		e := engine.NewLocalEngine(engine.WithTableCeiling(4096), engine.WithAgentOptions(agent.WithSeed(5)))
		gm := NewGameMaster(player.NewRandomPlayer("random", 11), player.NewEnginePlayer("tier 5", e, 5))

		result, err := gm.Run(ctx, game.Player)
		require.NoError(t, err)
		require.Equal(t, game.AI, result.Winner)
		require.Empty(t, result.Moves)
	})
}
