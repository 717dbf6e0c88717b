package game

import "errors"

const (
	Columns = 7
	Rows    = 6
	Connect = 4 // Stones in a row needed to win
	Center  = Columns / 2
)

// Full is returned by NextEmptyRow for a column without room.
const Full = -1

// NoMove is the column returned when the board has no valid move left.
const NoMove = -1

// Cell is the content of one board square. The numeric values are part of the
// wire contract with the UI.
type Cell uint8

const (
	Empty  Cell = 0
	Player Cell = 1 // Human side
	AI     Cell = 2 // Side the engine plays for
)

var (
	ErrInvalidColumn = errors.New("invalid column")
	ErrColumnFull    = errors.New("column is full")
	ErrInvalidCell   = errors.New("invalid cell value")
	ErrFloatingStone = errors.New("stone above an empty cell")
	ErrDimensions    = errors.New("board must have 7 columns of 6 rows")
)

// Opponent returns the other side. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Player:
		return AI
	case AI:
		return Player
	default:
		return Empty
	}
}

func (c Cell) String() string {
	switch c {
	case Player:
		return "player"
	case AI:
		return "ai"
	default:
		return "empty"
	}
}

// Evaluator scores a board from the AI's perspective: positive favours the AI.
type Evaluator func(Board) int
