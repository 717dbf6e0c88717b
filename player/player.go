package player

import (
	"context"
	"fmt"
	"time"

	"connect4/engine"
	"connect4/game"
	"connect4/searcher"
	"connect4/searcher/agent"

	"golang.org/x/exp/rand"
)

// Move is a player's choice together with whatever the player knows about how
// it was reached.
type Move struct {
	Column  int
	Layer   agent.Layer
	Metrics searcher.SearchMetric
}

// Player chooses moves for one side of a game.
type Player interface {
	Name() string
	// ChooseMove returns the column to drop a stone of colour cell into
	ChooseMove(ctx context.Context, board game.Board, cell game.Cell) (Move, error)
}

// EnginePlayer plays through an engine at a fixed difficulty. Engines always
// answer for game.AI, so boards are swapped when it plays game.Player.
type EnginePlayer struct {
	name       string
	engine     engine.Engine
	difficulty int
}

func NewEnginePlayer(name string, e engine.Engine, difficulty int) *EnginePlayer {
	if e == nil {
		panic("Must specify an engine")
	}
	return &EnginePlayer{name: name, engine: e, difficulty: difficulty}
}

func (p *EnginePlayer) Name() string {
	return p.name
}

func (p *EnginePlayer) Difficulty() int {
	return p.difficulty
}

func (p *EnginePlayer) ChooseMove(ctx context.Context, board game.Board, cell game.Cell) (Move, error) {
	if cell == game.Player {
		board = board.Swap()
	}
	response, err := p.engine.GetMove(ctx, board, p.difficulty)
	if err != nil {
		return Move{}, fmt.Errorf("failed to get move for %s: %w", p.name, err)
	}
	return Move{Column: response.Column, Layer: response.Layer, Metrics: response.Metrics}, nil
}

// RandomPlayer picks uniformly among the playable columns.
type RandomPlayer struct {
	name string
	rng  *rand.Rand
}

func NewRandomPlayer(name string, seed uint64) *RandomPlayer {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomPlayer{name: name, rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) Name() string {
	return p.name
}

func (p *RandomPlayer) ChooseMove(ctx context.Context, board game.Board, cell game.Cell) (Move, error) {
	if err := ctx.Err(); err != nil {
		return Move{}, err
	}
	moves := board.ValidMoves()
	if len(moves) == 0 {
		return Move{Column: game.NoMove, Layer: agent.LayerNone}, nil
	}
	return Move{Column: moves[p.rng.Intn(len(moves))]}, nil
}
