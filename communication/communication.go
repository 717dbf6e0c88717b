package communication

import (
	"context"
	"errors"
	"fmt"

	"connect4/game"
)

// Communicator exchanges engine messages with a remote peer.
type Communicator interface {
	Exchange(ctx context.Context, msg Message) (Message, error)
}

type MessageType string

const (
	GetMove MessageType = "GET_MOVE"
	Reset   MessageType = "RESET"
	Move    MessageType = "MOVE"
	ResetOK MessageType = "RESET_OK"
	Error   MessageType = "ERROR"
)

var (
	ErrMissingBoard   = errors.New("missing board")
	ErrUnknownMessage = errors.New("unknown message type")
)

// Message is the wire format shared by the HTTP and websocket endpoints.
// Requests carry GET_MOVE or RESET; replies carry MOVE, RESET_OK or ERROR.
type Message struct {
	Type       MessageType `json:"type"`
	Board      *game.Board `json:"board,omitempty"`
	Difficulty int         `json:"difficulty,omitempty"`
	Column     *int        `json:"column,omitempty"`
	Layer      string      `json:"layer,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Session is returned when a server session is opened.
type Session struct {
	ID string `json:"id"`
}

func MoveMessage(column int, layer string) Message {
	return Message{Type: Move, Column: &column, Layer: layer}
}

func ErrorMessage(err error) Message {
	return Message{Type: Error, Error: err.Error()}
}

// Validate checks a request before it reaches an engine. Difficulty is not
// checked: unknown levels are played at the default tier.
func (m Message) Validate() error {
	switch m.Type {
	case GetMove:
		if m.Board == nil {
			return ErrMissingBoard
		}
		if err := m.Board.Validate(); err != nil {
			return fmt.Errorf("invalid board: %w", err)
		}
		return nil
	case Reset:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
}
