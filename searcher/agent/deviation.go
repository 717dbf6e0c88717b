package agent

import (
	"connect4/game"
	"connect4/searcher"
	"connect4/utils"

	"golang.org/x/exp/rand"
)

// deviate picks a random column instead of the searched one. Moves that hand
// the opponent an immediate win are avoided unless nothing else is left.
func deviate(rng *rand.Rand, b game.Board, moves []int) int {
	safe := utils.Filter(moves, func(col int) bool {
		return !searcher.IsBadMove(b, col)
	})
	if len(safe) > 0 {
		return sample(rng, safe)
	}
	return sample(rng, moves)
}

func sample(rng *rand.Rand, moves []int) int {
	return moves[rng.Intn(len(moves))]
}
