package gamemaster

import (
	"errors"
	"fmt"

	"connect4/game"
	"connect4/meta"
	"connect4/utils"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
)

// Update is published for every stone dropped into a match.
type Update struct {
	Column int
	Row    int
	Cell   game.Cell
	Board  game.Board
}

// Match holds the state of one game and enforces its rules. It is not safe
// for concurrent use.
type Match struct {
	board    game.Board
	turn     game.Cell
	moves    int
	winner   game.Cell
	over     bool
	updateCh chan Update
}

// NewMatch starts a match on an empty board with first to move.
func NewMatch(first game.Cell) *Match {
	if first != game.Player && first != game.AI {
		panic("Must specify the starting side")
	}
	return &Match{
		board:    game.NewBoard(),
		turn:     first,
		updateCh: make(chan Update, meta.MAX_TURNS),
	}
}

func (m *Match) Board() game.Board { return m.board }
func (m *Match) Turn() game.Cell   { return m.turn }
func (m *Match) Moves() int        { return m.moves }
func (m *Match) IsOver() bool      { return m.over }

// Winner is the side that connected four, or game.Empty while the game runs
// and after a draw.
func (m *Match) Winner() game.Cell { return m.winner }

// Updates delivers one Update per accepted move and is closed once the game
// is over.
func (m *Match) Updates() <-chan Update {
	return m.updateCh
}

// Play drops a stone for the side to move.
func (m *Match) Play(col int) error {
	if m.over {
		return ErrGameOver
	}
	if !utils.Contains(m.board.ValidMoves(), col) {
		return fmt.Errorf("%w: column %d", ErrIllegalMove, col)
	}

	next, row, err := m.board.Play(col, m.turn)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	m.board = next
	m.moves++

	if next.CheckWin(col, row, m.turn) {
		m.winner = m.turn
		m.over = true
	} else if next.IsFull() {
		m.over = true
	}

	m.updateCh <- Update{Column: col, Row: row, Cell: m.turn, Board: next}
	if m.over {
		close(m.updateCh)
	}
	m.turn = m.turn.Opponent()
	return nil
}
