package engine

import (
	"context"
	"errors"
	"fmt"

	"connect4/game"
	"connect4/searcher"
	"connect4/searcher/agent"
)

// Command is a request a host can send to an engine.
type Command int

const (
	GetMove Command = iota
	Reset
)

func (c Command) String() string {
	switch c {
	case GetMove:
		return "GET_MOVE"
	case Reset:
		return "RESET"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

var ErrUnknownCommand = errors.New("unknown command")

type Request struct {
	Command    Command
	Board      game.Board
	Difficulty int
}

// Response carries the chosen column, or game.NoMove when the board has no
// room left. Reset answers with an empty response.
type Response struct {
	Column  int
	Layer   agent.Layer
	Metrics searcher.SearchMetric
}

type Engine interface {
	// GetMove returns the AI's column for board at the given difficulty
	GetMove(ctx context.Context, board game.Board, difficulty int) (Response, error)
	// Reset drops all cached search state
	Reset(ctx context.Context) error
}

// Handle dispatches a request to e.
func Handle(ctx context.Context, e Engine, req Request) (Response, error) {
	switch req.Command {
	case GetMove:
		return e.GetMove(ctx, req.Board, req.Difficulty)
	case Reset:
		if err := e.Reset(ctx); err != nil {
			return Response{}, err
		}
		return Response{Column: game.NoMove, Layer: agent.LayerNone}, nil
	default:
		return Response{}, fmt.Errorf("%w: %s", ErrUnknownCommand, req.Command)
	}
}
