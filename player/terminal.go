package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"connect4/game"

	"github.com/muesli/termenv"
)

var ErrNoInput = errors.New("input closed")

// TerminalPlayer asks a human for columns numbered 1 to 7 and draws the board
// before every prompt.
type TerminalPlayer struct {
	name    string
	scanner *bufio.Scanner
	out     *termenv.Output
}

func NewTerminalPlayer(name string, in io.Reader, out io.Writer, options ...termenv.OutputOption) *TerminalPlayer {
	return &TerminalPlayer{
		name:    name,
		scanner: bufio.NewScanner(in),
		out:     termenv.NewOutput(out, options...),
	}
}

func (p *TerminalPlayer) Name() string {
	return p.name
}

// Show draws b to the player's terminal.
func (p *TerminalPlayer) Show(b game.Board) {
	fmt.Fprintln(p.out, Render(p.out, b))
}

func (p *TerminalPlayer) ChooseMove(ctx context.Context, board game.Board, cell game.Cell) (Move, error) {
	p.Show(board)
	for {
		if err := ctx.Err(); err != nil {
			return Move{}, err
		}
		fmt.Fprintf(p.out, "%s (%s), column 1-%d: ", p.name, stone(p.out, cell), game.Columns)
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return Move{}, fmt.Errorf("failed to read move: %w", err)
			}
			return Move{}, ErrNoInput
		}

		n, err := strconv.Atoi(strings.TrimSpace(p.scanner.Text()))
		if err != nil || n < 1 || n > game.Columns {
			fmt.Fprintf(p.out, "enter a number between 1 and %d\n", game.Columns)
			continue
		}
		if !board.CanPlay(n - 1) {
			fmt.Fprintf(p.out, "column %d is full\n", n)
			continue
		}
		return Move{Column: n - 1}, nil
	}
}

// Render draws b top row first with coloured stones and a column ruler.
func Render(out *termenv.Output, b game.Board) string {
	var sb strings.Builder
	for row := game.Rows - 1; row >= 0; row-- {
		sb.WriteString("|")
		for col := 0; col < game.Columns; col++ {
			sb.WriteString(stone(out, b.At(col, row)))
			sb.WriteString("|")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(" ")
	for col := 1; col <= game.Columns; col++ {
		sb.WriteString(strconv.Itoa(col))
		sb.WriteString(" ")
	}
	return strings.TrimRight(sb.String(), " ")
}

func stone(out *termenv.Output, cell game.Cell) string {
	symbol := string(cell.Symbol())
	switch cell {
	case game.Player:
		return out.String(symbol).Foreground(out.Color("1")).Bold().String()
	case game.AI:
		return out.String(symbol).Foreground(out.Color("3")).Bold().String()
	default:
		return out.String(symbol).Faint().String()
	}
}
