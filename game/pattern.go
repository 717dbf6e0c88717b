package game

// PatternKind names a strategic shape recognised by the evaluator.
type PatternKind int

const (
	Fork PatternKind = iota
	Diagonal
	CenterControl
)

func (k PatternKind) String() string {
	switch k {
	case Fork:
		return "fork"
	case Diagonal:
		return "diagonal"
	case CenterControl:
		return "center-control"
	default:
		return "unknown"
	}
}

// Pattern pairs a shape with its score weight and a per-stone detector.
type Pattern struct {
	Kind   PatternKind
	Weight int
	detect func(s *patternScan, col, row int, owner Cell) bool
}

// patternScan carries per-evaluation facts that do not depend on the stone
// being inspected.
type patternScan struct {
	board Board
	forks [AI + 1]bool // Indexed by owner
}

func newPatternScan(b Board) *patternScan {
	s := &patternScan{board: b}
	s.forks[AI] = CountWinningMoves(b, AI) >= 2
	s.forks[Player] = CountWinningMoves(b, Player) >= 2
	return s
}

// Patterns is the fixed pattern table, iterated once per occupied cell.
var Patterns = []Pattern{
	{
		Kind:   Fork,
		Weight: 500,
		detect: func(s *patternScan, _, _ int, owner Cell) bool {
			return s.forks[owner]
		},
	},
	{
		Kind:   Diagonal,
		Weight: 150,
		detect: func(s *patternScan, col, row int, owner Cell) bool {
			rising := s.board.runLength(col, row, 1, 1, owner) + s.board.runLength(col, row, -1, -1, owner) - 1
			falling := s.board.runLength(col, row, 1, -1, owner) + s.board.runLength(col, row, -1, 1, owner) - 1
			return max(rising, falling) >= 3
		},
	},
	{
		Kind:   CenterControl,
		Weight: 70,
		detect: func(_ *patternScan, col, row int, _ Cell) bool {
			return col == Center && row <= 3
		},
	},
}

// runLength counts the origin plus consecutive stones of owner walking from
// (col, row) in direction (dCol, dRow).
func (b Board) runLength(col, row, dCol, dRow int, owner Cell) int {
	count := 1
	for c, r := col+dCol, row+dRow; inBounds(c, r) && b[c][r] == owner; c, r = c+dCol, r+dRow {
		count++
	}
	return count
}

// WinningColumns returns the columns where dropping a stone of colour cell
// completes four in a row right now.
func WinningColumns(b Board, cell Cell) []int {
	var cols []int
	for col := 0; col < Columns; col++ {
		row := b.NextEmptyRow(col)
		if row == Full {
			continue
		}
		if b.With(col, row, cell).CheckWin(col, row, cell) {
			cols = append(cols, col)
		}
	}
	return cols
}

// CountWinningMoves returns len(WinningColumns(b, cell)) without allocating.
func CountWinningMoves(b Board, cell Cell) int {
	n := 0
	for col := 0; col < Columns; col++ {
		row := b.NextEmptyRow(col)
		if row == Full {
			continue
		}
		if b.With(col, row, cell).CheckWin(col, row, cell) {
			n++
		}
	}
	return n
}
