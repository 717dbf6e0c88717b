package engine

import (
	"context"
	"errors"
	"testing"

	"connect4/communication"
	"connect4/game"
	"connect4/searcher/agent"

	"github.com/stretchr/testify/require"
)

type fakeCommunicator struct {
	sent  []communication.Message
	reply communication.Message
	err   error
}

func (f *fakeCommunicator) Exchange(ctx context.Context, msg communication.Message) (communication.Message, error) {
	f.sent = append(f.sent, msg)
	return f.reply, f.err
}

func TestRemoteEngine(t *testing.T) {
	ctx := context.Background()

	t.Run("sends the board and difficulty", func(t *testing.T) {
		comm := &fakeCommunicator{reply: communication.MoveMessage(4, "search")}
		b := game.MustParseBoard("...X...")
		response, err := NewRemoteEngine(comm).GetMove(ctx, b, 2)
		require.NoError(t, err)
		require.Equal(t, 4, response.Column)
		require.Equal(t, agent.LayerSearch, response.Layer)

		require.Len(t, comm.sent, 1)
		require.Equal(t, communication.GetMove, comm.sent[0].Type)
		require.Equal(t, b, *comm.sent[0].Board)
		require.Equal(t, 2, comm.sent[0].Difficulty)
	})

	t.Run("error replies become errors", func(t *testing.T) {
		comm := &fakeCommunicator{reply: communication.ErrorMessage(errors.New("boom"))}
		_, err := NewRemoteEngine(comm).GetMove(ctx, game.NewBoard(), 2)
		require.ErrorIs(t, err, ErrRemote)
		require.ErrorIs(t, NewRemoteEngine(comm).Reset(ctx), ErrRemote)
	})

	t.Run("transport failures are wrapped", func(t *testing.T) {
		broken := errors.New("connection refused")
		comm := &fakeCommunicator{err: broken}
		_, err := NewRemoteEngine(comm).GetMove(ctx, game.NewBoard(), 2)
		require.ErrorIs(t, err, broken)
	})

	t.Run("reset expects an acknowledgement", func(t *testing.T) {
		comm := &fakeCommunicator{reply: communication.Message{Type: communication.ResetOK}}
		require.NoError(t, NewRemoteEngine(comm).Reset(ctx))
		require.Equal(t, communication.Reset, comm.sent[0].Type)

		comm.reply = communication.MoveMessage(1, "win")
		require.ErrorIs(t, NewRemoteEngine(comm).Reset(ctx), ErrRemote)
	})

	t.Run("move without a column means no move", func(t *testing.T) {
		comm := &fakeCommunicator{reply: communication.Message{Type: communication.Move, Layer: "none"}}
		response, err := NewRemoteEngine(comm).GetMove(ctx, game.NewBoard(), 2)
		require.NoError(t, err)
		require.Equal(t, game.NoMove, response.Column)
	})
}
