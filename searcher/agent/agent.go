package agent

import (
	"context"

	"connect4/game"
	"connect4/searcher"
)

type Agent interface {
	// FindMove returns the AI's column on board at the given tier, the layer
	// that chose it and search metrics (if collected)
	FindMove(ctx context.Context, board game.Board, tier Tier) Decision
}

// Layer names the stage of the decision cascade that produced a move.
type Layer string

const (
	LayerWin        Layer = "win"
	LayerBlock      Layer = "block"
	LayerTrap       Layer = "trap"
	LayerHorizontal Layer = "horizontal"
	LayerLookahead  Layer = "lookahead"
	LayerSearch     Layer = "search"
	LayerDeviation  Layer = "deviation"
	LayerNone       Layer = "none"
)

type Decision struct {
	Column  int
	Layer   Layer
	Metrics searcher.SearchMetric
}
