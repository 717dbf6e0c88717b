package gamemaster

import (
	"context"
	"fmt"

	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/player"

	"github.com/rs/zerolog/log"
)

type Option func(gm *GameMaster)

func WithMetrics() Option {
	return func(gm *GameMaster) {
		gm.collector = metrics.NewCollector()
	}
}

// WithObserver calls observe for every move played, in order.
func WithObserver(observe func(Update)) Option {
	return func(gm *GameMaster) {
		gm.observers = append(gm.observers, observe)
	}
}

// Result is the outcome of one game.
type Result struct {
	Winner game.Cell // Empty for a draw
	Board  game.Board
	Game   metrics.GameMetric
	Moves  []metrics.MoveMetric
}

// GameMaster referees games between two players. px plays the game.Player
// stones (X) and po the game.AI stones (O).
type GameMaster struct {
	players   map[game.Cell]player.Player
	collector metrics.Collector
	observers []func(Update)
}

func NewGameMaster(px, po player.Player, options ...Option) *GameMaster {
	if px == nil || po == nil {
		panic("Must specify both players")
	}
	gm := &GameMaster{ // Default values
		players:   map[game.Cell]player.Player{game.Player: px, game.AI: po},
		collector: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(gm)
	}
	return gm
}

// Run plays one game to completion with starting to move first. A player
// error or an illegal move aborts the game.
func (gm *GameMaster) Run(ctx context.Context, starting game.Cell) (Result, error) {
	match := NewMatch(starting)
	gm.collector.Start(starting)

	for !match.IsOver() {
		turn := match.Turn()
		p := gm.players[turn]

		move, err := p.ChooseMove(ctx, match.Board(), turn)
		if err != nil {
			return Result{}, fmt.Errorf("failed to get move from %s: %w", p.Name(), err)
		}
		if err := match.Play(move.Column); err != nil {
			return Result{}, fmt.Errorf("%s: %w", p.Name(), err)
		}

		gm.collector.AddMove(metrics.MoveMetric{
			Player:       turn,
			Column:       move.Column,
			Layer:        string(move.Layer),
			SearchMetric: move.Metrics,
		})
		log.Debug().Str("player", p.Name()).Int("column", move.Column).Str("layer", string(move.Layer)).Msg("move played")
		gm.drain(match)
	}

	gameMetric, moveMetrics := gm.collector.Complete(match.Winner())
	result := Result{
		Winner: match.Winner(),
		Board:  match.Board(),
		Game:   gameMetric,
		Moves:  moveMetrics,
	}
	if result.Winner == game.Empty {
		log.Info().Msgf("game drawn after %d moves", match.Moves())
	} else {
		log.Info().Msgf("%s (%s) wins after %d moves", gm.players[result.Winner].Name(), result.Winner, match.Moves())
	}
	return result, nil
}

func (gm *GameMaster) drain(match *Match) {
	for {
		select {
		case u, ok := <-match.Updates():
			if !ok {
				return
			}
			for _, observe := range gm.observers {
				observe(u)
			}
		default:
			return
		}
	}
}
