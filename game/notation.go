package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Key serialises every cell, one digit per cell, columns bottom-up and
// separated by '|'. It is lossless and stable.
func (b Board) Key() string {
	var sb strings.Builder
	sb.Grow(Columns*(Rows+1) - 1)
	for col := 0; col < Columns; col++ {
		if col > 0 {
			sb.WriteByte('|')
		}
		for row := 0; row < Rows; row++ {
			sb.WriteByte('0' + byte(b[col][row]))
		}
	}
	return sb.String()
}

const (
	emptySymbol  = '.'
	playerSymbol = 'X'
	aiSymbol     = 'O'
)

// Symbol is the single-character notation of a cell.
func (c Cell) Symbol() byte {
	switch c {
	case Player:
		return playerSymbol
	case AI:
		return aiSymbol
	default:
		return emptySymbol
	}
}

// ParseBoard reads a board drawn top row first, one string per row, using
// '.' for empty, 'X' for the player and 'O' for the AI. Fewer than Rows lines
// fill the bottom of the board.
func ParseBoard(lines ...string) (Board, error) {
	var b Board
	if len(lines) > Rows {
		return b, fmt.Errorf("%w: got %d rows", ErrDimensions, len(lines))
	}
	for i, line := range lines {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != Columns {
			return b, fmt.Errorf("%w: row %q has %d columns", ErrDimensions, line, len(line))
		}
		row := len(lines) - 1 - i
		for col := 0; col < Columns; col++ {
			switch line[col] {
			case emptySymbol:
			case playerSymbol:
				b[col][row] = Player
			case aiSymbol:
				b[col][row] = AI
			default:
				return b, fmt.Errorf("%w: %q", ErrInvalidCell, line[col])
			}
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixtures known to be valid.
func MustParseBoard(lines ...string) Board {
	b, err := ParseBoard(lines...)
	if err != nil {
		panic(err)
	}
	return b
}

// String draws the board top row first in ParseBoard notation.
func (b Board) String() string {
	var sb strings.Builder
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			sb.WriteByte(b[col][row].Symbol())
		}
		if row > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// MarshalJSON encodes the board as [column][row] integers, the shape the UI
// posts with every move request.
func (b Board) MarshalJSON() ([]byte, error) {
	grid := make([][]int, Columns)
	for col := range grid {
		grid[col] = make([]int, Rows)
		for row := range grid[col] {
			grid[col][row] = int(b[col][row])
		}
	}
	return json.Marshal(grid)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var grid [][]int
	if err := json.Unmarshal(data, &grid); err != nil {
		return err
	}
	if len(grid) != Columns {
		return fmt.Errorf("%w: got %d columns", ErrDimensions, len(grid))
	}
	var out Board
	for col, column := range grid {
		if len(column) != Rows {
			return fmt.Errorf("%w: column %d has %d rows", ErrDimensions, col, len(column))
		}
		for row, v := range column {
			if v < int(Empty) || v > int(AI) {
				return fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidCell, v, col, row)
			}
			out[col][row] = Cell(v)
		}
	}
	*b = out
	return nil
}
