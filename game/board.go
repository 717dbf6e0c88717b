package game

import "fmt"

// Board is a 7x6 grid addressed as [column][row], row 0 being the bottom.
// Board is a value: playing a move returns a new board and leaves the
// receiver untouched, so search branches never alias each other.
type Board [Columns][Rows]Cell

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

func inBounds(col, row int) bool {
	return col >= 0 && col < Columns && row >= 0 && row < Rows
}

// At returns the cell at (col, row).
func (b Board) At(col, row int) Cell {
	return b[col][row]
}

// NextEmptyRow returns the lowest empty row of col, or Full.
func (b Board) NextEmptyRow(col int) int {
	for row := 0; row < Rows; row++ {
		if b[col][row] == Empty {
			return row
		}
	}
	return Full
}

// CanPlay reports whether a stone can be dropped into col.
func (b Board) CanPlay(col int) bool {
	return col >= 0 && col < Columns && b[col][Rows-1] == Empty
}

// ValidMoves returns the columns with room, in ascending order.
func (b Board) ValidMoves() []int {
	moves := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.NextEmptyRow(col) != Full {
			moves = append(moves, col)
		}
	}
	return moves
}

// Play drops a stone of the given colour into col and returns the new board
// together with the row the stone landed on.
func (b Board) Play(col int, cell Cell) (Board, int, error) {
	if col < 0 || col >= Columns {
		return b, Full, fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	row := b.NextEmptyRow(col)
	if row == Full {
		return b, Full, fmt.Errorf("%w: %d", ErrColumnFull, col)
	}
	b[col][row] = cell
	return b, row, nil
}

// With returns a copy of the board with (col, row) set to cell. It does not
// enforce gravity; callers pass the row from NextEmptyRow.
func (b Board) With(col, row int, cell Cell) Board {
	b[col][row] = cell
	return b
}

var axes = [4][2]int{
	{1, 0},  // Row
	{0, 1},  // Column
	{1, 1},  // Rising diagonal
	{1, -1}, // Falling diagonal
}

// CheckWin reports whether a run of four stones of colour cell passes through
// (col, row). Each axis is scanned in a window of three cells on either side
// of the origin, clipped to the board edges.
func (b Board) CheckWin(col, row int, cell Cell) bool {
	if cell == Empty {
		return false
	}
	for _, axis := range axes {
		count := 0
		for k := -(Connect - 1); k <= Connect-1; k++ {
			c, r := col+k*axis[0], row+k*axis[1]
			if !inBounds(c, r) {
				continue
			}
			if b[c][r] == cell {
				count++
				if count >= Connect {
					return true
				}
			} else {
				count = 0
			}
		}
	}
	return false
}

// Winner returns the colour owning a four-in-a-row, scanning columns then
// rows, or Empty when nobody has won.
func (b Board) Winner() Cell {
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			cell := b[col][row]
			if cell != Empty && b.CheckWin(col, row, cell) {
				return cell
			}
		}
	}
	return Empty
}

// IsFull reports whether no column has room.
func (b Board) IsFull() bool {
	for col := 0; col < Columns; col++ {
		if b[col][Rows-1] == Empty {
			return false
		}
	}
	return true
}

// IsTerminal reports whether the game on this board is over.
func (b Board) IsTerminal() bool {
	return b.Winner() != Empty || b.IsFull()
}

// Count returns how many stones of colour cell are on the board.
func (b Board) Count(cell Cell) int {
	n := 0
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			if b[col][row] == cell {
				n++
			}
		}
	}
	return n
}

// Swap exchanges Player and AI stones.
func (b Board) Swap() Board {
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			b[col][row] = b[col][row].Opponent()
		}
	}
	return b
}

// Validate checks cell values and the gravity invariant. The search core
// assumes valid boards; Validate is meant for input crossing a process
// boundary.
func (b Board) Validate() error {
	for col := 0; col < Columns; col++ {
		seenEmpty := false
		for row := 0; row < Rows; row++ {
			switch cell := b[col][row]; {
			case cell > AI:
				return fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidCell, cell, col, row)
			case cell == Empty:
				seenEmpty = true
			case seenEmpty:
				return fmt.Errorf("%w at (%d,%d)", ErrFloatingStone, col, row)
			}
		}
	}
	return nil
}
