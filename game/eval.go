package game

// WinScore is returned by Evaluate for a board the AI has already won, and its
// negation for a board the opponent has won.
const WinScore = 1_000_000

const centerStoneBonus = 6

// Four-cell window scores. Windows holding a single opponent stone score
// nothing.
const (
	aiThreeWindow       = 150
	aiTwoWindow         = 20
	aiOneWindow         = 1
	opponentThreeWindow = -120
	opponentTwoWindow   = -15
)

// Horizontal triples are scored on top of the windows, with the opponent's
// triple weighted well above the AI's.
const (
	aiHorizontalThree       = 80
	opponentHorizontalThree = -300
)

// Evaluate scores the board from the AI's perspective. A decided board
// returns ±WinScore immediately; otherwise the score is the sum of pattern,
// center column, window and horizontal triple components.
func Evaluate(b Board) int {
	if score, decided := terminalScore(b); decided {
		return score
	}
	return patternScore(b) + centerScore(b) + windowScore(b) + horizontalThreeScore(b)
}

// terminalScore checks every stone for a completed four, AI first at each
// square.
func terminalScore(b Board) (int, bool) {
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			switch cell := b[col][row]; {
			case cell == AI && b.CheckWin(col, row, AI):
				return WinScore, true
			case cell == Player && b.CheckWin(col, row, Player):
				return -WinScore, true
			}
		}
	}
	return 0, false
}

// patternScore runs the pattern table on each stone. Opponent matches cost
// 1.2 times the pattern weight.
func patternScore(b Board) int {
	scan := newPatternScan(b)
	score := 0
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			owner := b[col][row]
			if owner == Empty {
				continue
			}
			for _, p := range Patterns {
				if !p.detect(scan, col, row, owner) {
					continue
				}
				if owner == AI {
					score += p.Weight
				} else {
					score -= p.Weight * 6 / 5
				}
			}
		}
	}
	return score
}

func centerScore(b Board) int {
	score := 0
	for row := 0; row < Rows; row++ {
		switch b[Center][row] {
		case AI:
			score += centerStoneBonus
		case Player:
			score -= centerStoneBonus
		}
	}
	return score
}

// windowScore sums every horizontal, vertical and diagonal run of four cells.
func windowScore(b Board) int {
	score := 0
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			for _, axis := range axes {
				endCol := col + (Connect-1)*axis[0]
				endRow := row + (Connect-1)*axis[1]
				if !inBounds(endCol, endRow) {
					continue
				}
				score += scoreWindow(b, col, row, axis[0], axis[1])
			}
		}
	}
	return score
}

func scoreWindow(b Board, col, row, dCol, dRow int) int {
	ai, opponent := 0, 0
	for i := 0; i < Connect; i++ {
		switch b[col+i*dCol][row+i*dRow] {
		case AI:
			ai++
		case Player:
			opponent++
		}
	}
	switch {
	case opponent == 0 && ai == 3:
		return aiThreeWindow
	case opponent == 0 && ai == 2:
		return aiTwoWindow
	case opponent == 0 && ai == 1:
		return aiOneWindow
	case ai == 0 && opponent == 3:
		return opponentThreeWindow
	case ai == 0 && opponent == 2:
		return opponentTwoWindow
	default:
		return 0
	}
}

func horizontalThreeScore(b Board) int {
	score := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col+2 < Columns; col++ {
			cell := b[col][row]
			if cell == Empty || b[col+1][row] != cell || b[col+2][row] != cell {
				continue
			}
			if cell == AI {
				score += aiHorizontalThree
			} else {
				score += opponentHorizontalThree
			}
		}
	}
	return score
}
