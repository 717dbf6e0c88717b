package engine

import (
	"context"
	"errors"
	"fmt"

	"connect4/communication"
	"connect4/game"
	"connect4/searcher/agent"
)

var ErrRemote = errors.New("remote engine error")

// RemoteEngine forwards requests to an engine behind a Communicator.
type RemoteEngine struct {
	comm communication.Communicator
}

func NewRemoteEngine(comm communication.Communicator) *RemoteEngine {
	if comm == nil {
		panic("Must specify a communicator")
	}
	return &RemoteEngine{comm: comm}
}

func (e *RemoteEngine) GetMove(ctx context.Context, board game.Board, difficulty int) (Response, error) {
	reply, err := e.comm.Exchange(ctx, communication.Message{
		Type:       communication.GetMove,
		Board:      &board,
		Difficulty: difficulty,
	})
	if err != nil {
		return Response{}, fmt.Errorf("failed to request move: %w", err)
	}

	switch reply.Type {
	case communication.Move:
		column := game.NoMove
		if reply.Column != nil {
			column = *reply.Column
		}
		return Response{Column: column, Layer: agent.Layer(reply.Layer)}, nil
	case communication.Error:
		return Response{}, fmt.Errorf("%w: %s", ErrRemote, reply.Error)
	default:
		return Response{}, fmt.Errorf("%w: unexpected reply %q", ErrRemote, reply.Type)
	}
}

func (e *RemoteEngine) Reset(ctx context.Context) error {
	reply, err := e.comm.Exchange(ctx, communication.Message{Type: communication.Reset})
	if err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	switch reply.Type {
	case communication.ResetOK:
		return nil
	case communication.Error:
		return fmt.Errorf("%w: %s", ErrRemote, reply.Error)
	default:
		return fmt.Errorf("%w: unexpected reply %q", ErrRemote, reply.Type)
	}
}
