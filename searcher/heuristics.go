package searcher

import (
	"math"

	"connect4/game"
)

// Tactical layers run before the full search. They are deterministic; the
// agent decides whether to act on their answer.

const (
	trapReplyScore   = 100
	trapThreshold    = 200
	futureWinScore   = 1000
	futureThreshold  = 800
	futureDiscount   = 0.8
	futureBranchSize = 3
)

// FindWinningMove returns the lowest column that completes four for cell, or
// game.NoMove.
func FindWinningMove(b game.Board, cell game.Cell) int {
	for col := 0; col < game.Columns; col++ {
		row := b.NextEmptyRow(col)
		if row == game.Full {
			continue
		}
		if b.With(col, row, cell).CheckWin(col, row, cell) {
			return col
		}
	}
	return game.NoMove
}

// FindTrapMove looks for an AI move after which every opponent reply still
// leaves the AI a winning continuation, preferring moves that leave several.
// A candidate is discarded as soon as one reply wins for the opponent or
// leaves the AI without a win. Each reply that leaves n >= 2 winning columns
// adds n*100*weight; the best candidate is returned only if it scores above
// 200*weight.
func FindTrapMove(b game.Board, weight float64) int {
	best, bestScore := game.NoMove, math.Inf(-1)
	for col := 0; col < game.Columns; col++ {
		row := b.NextEmptyRow(col)
		if row == game.Full {
			continue
		}
		score, ok := trapScore(b.With(col, row, game.AI), weight)
		if ok && score > bestScore {
			best, bestScore = col, score
		}
	}
	if bestScore > trapThreshold*weight {
		return best
	}
	return game.NoMove
}

func trapScore(b game.Board, weight float64) (float64, bool) {
	score := 0.0
	for col := 0; col < game.Columns; col++ {
		row := b.NextEmptyRow(col)
		if row == game.Full {
			continue
		}
		reply := b.With(col, row, game.Player)
		if reply.CheckWin(col, row, game.Player) {
			return 0, false
		}
		switch n := game.CountWinningMoves(reply, game.AI); {
		case n == 0:
			return 0, false
		case n >= 2:
			score += float64(n) * trapReplyScore * weight
		}
	}
	return score, true
}

// FindHorizontalThreat returns the gap the AI must fill to stop a horizontal
// opponent four: first any four-cell row window holding three opponent stones
// and a playable empty cell, then the split shapes X_XXX and XXX_X.
func FindHorizontalThreat(b game.Board) int {
	for row := 0; row < game.Rows; row++ {
		for col := 0; col+game.Connect <= game.Columns; col++ {
			stones, gap := 0, game.NoMove
			for i := 0; i < game.Connect; i++ {
				switch b[col+i][row] {
				case game.Player:
					stones++
				case game.Empty:
					gap = col + i
				}
			}
			if stones == 3 && gap != game.NoMove && supported(b, gap, row) {
				return gap
			}
		}
	}

	for row := 0; row < game.Rows; row++ {
		for col := 0; col+game.Connect < game.Columns; col++ {
			for _, gap := range []int{col + 1, col + 3} {
				if splitFour(b, col, row, gap) && supported(b, gap, row) {
					return gap
				}
			}
		}
	}
	return game.NoMove
}

// splitFour reports whether the five cells from col hold opponent stones
// everywhere except at gap, which is empty.
func splitFour(b game.Board, col, row, gap int) bool {
	for c := col; c < col+5; c++ {
		want := game.Player
		if c == gap {
			want = game.Empty
		}
		if b[c][row] != want {
			return false
		}
	}
	return true
}

// supported reports whether a stone dropped into col would land on row.
func supported(b game.Board, col, row int) bool {
	return row == 0 || b[col][row-1] != game.Empty
}

// FindFutureWin runs a narrow minimax over the three most central columns
// per ply, lookahead plies deep counting the AI's move. It returns the best
// AI move only if its score clears the near-win threshold.
func FindFutureWin(b game.Board, lookahead int) int {
	best, bestScore := game.NoMove, math.Inf(-1)
	for _, col := range b.ValidMoves() {
		child, _, err := b.Play(col, game.AI)
		if err != nil {
			continue
		}
		score := evaluateFuture(child, lookahead-1, false)
		if score > bestScore {
			best, bestScore = col, score
		}
	}
	if bestScore > futureThreshold {
		return best
	}
	return game.NoMove
}

// evaluateFuture scores a decided board as ±1000 per remaining ply, so
// quicker wins and later losses rank higher.
func evaluateFuture(b game.Board, depth int, aiTurn bool) float64 {
	if depth <= 0 {
		return float64(game.Evaluate(b)) * futureDiscount
	}

	switch b.Winner() {
	case game.AI:
		return float64(futureWinScore * depth)
	case game.Player:
		return float64(-futureWinScore * depth)
	}

	moves := OrderMoves(b.ValidMoves())
	if len(moves) == 0 {
		return 0
	}
	if len(moves) > futureBranchSize {
		moves = moves[:futureBranchSize]
	}

	if aiTurn {
		score := math.Inf(-1)
		for _, col := range moves {
			child, _, _ := b.Play(col, game.AI)
			score = math.Max(score, evaluateFuture(child, depth-1, false))
		}
		return score
	}
	score := math.Inf(1)
	for _, col := range moves {
		child, _, _ := b.Play(col, game.Player)
		score = math.Min(score, evaluateFuture(child, depth-1, true))
	}
	return score
}

// IsBadMove reports whether playing col hands the opponent an immediate win.
func IsBadMove(b game.Board, col int) bool {
	child, _, err := b.Play(col, game.AI)
	if err != nil {
		return true
	}
	return FindWinningMove(child, game.Player) != game.NoMove
}
