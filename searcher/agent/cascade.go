package agent

import (
	"context"
	"time"

	"connect4/game"
	"connect4/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Probability of defending a horizontal threat before the random factor is
// subtracted.
const horizontalDefence = 0.95

type Option func(a *tieredAgent)

func WithSeed(seed uint64) Option {
	return func(a *tieredAgent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(a *tieredAgent) {
		a.metrics = true
	}
}

// tieredAgent runs the decision cascade: immediate win, block, trap,
// horizontal threat, lookahead, alpha-beta search and finally a random
// deviation. Lower tiers skip tactical layers with probability RandomFactor.
// It is not safe for concurrent use.
type tieredAgent struct {
	table   *searcher.Table
	rng     *rand.Rand
	metrics bool
}

// NewTieredAgent returns an agent whose searches share table.
func NewTieredAgent(table *searcher.Table, options ...Option) Agent {
	if table == nil {
		panic("Must specify a transposition table")
	}
	a := &tieredAgent{
		table: table,
		rng:   rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *tieredAgent) FindMove(ctx context.Context, b game.Board, tier Tier) Decision {
	decision := a.decide(ctx, b, tier)
	log.Debug().
		Int("tier", tier.Level).
		Int("column", decision.Column).
		Str("layer", string(decision.Layer)).
		Dur("duration", decision.Metrics.Duration).
		Msg("move selected")
	return decision
}

func (a *tieredAgent) decide(ctx context.Context, b game.Board, tier Tier) Decision {
	if col := searcher.FindWinningMove(b, game.AI); col != game.NoMove {
		return Decision{Column: col, Layer: LayerWin}
	}

	if col := searcher.FindWinningMove(b, game.Player); col != game.NoMove {
		// The two weakest tiers sometimes overlook the threat
		if !(tier.Level <= 2 && a.rng.Float64() < tier.RandomFactor) {
			return Decision{Column: col, Layer: LayerBlock}
		}
	}

	if tier.TrapWeight > 0 {
		if col := searcher.FindTrapMove(b, tier.TrapWeight); col != game.NoMove && a.rng.Float64() > tier.RandomFactor {
			return Decision{Column: col, Layer: LayerTrap}
		}
	}

	if col := searcher.FindHorizontalThreat(b); col != game.NoMove && a.rng.Float64() < horizontalDefence-tier.RandomFactor {
		return Decision{Column: col, Layer: LayerHorizontal}
	}

	if tier.Lookahead > 1 {
		if col := searcher.FindFutureWin(b, tier.Lookahead); col != game.NoMove && a.rng.Float64() > tier.RandomFactor {
			return Decision{Column: col, Layer: LayerLookahead}
		}
	}

	moves := b.ValidMoves()
	if len(moves) == 0 {
		return Decision{Column: game.NoMove, Layer: LayerNone}
	}

	options := []searcher.Option{
		searcher.WithDepth(tier.MaxDepth),
		searcher.WithDuration(tier.Budget()),
		searcher.WithTable(a.table),
	}
	if a.metrics {
		options = append(options, searcher.WithMetrics())
	}
	result := searcher.NewAlphaBeta(options...).Search(ctx, b)
	if result.TimedOut {
		log.Debug().Msgf("tier %d search hit its %v budget", tier.Level, tier.Budget())
	}

	if tier.RandomFactor > 0 && a.rng.Float64() < tier.RandomFactor {
		return Decision{Column: deviate(a.rng, b, moves), Layer: LayerDeviation, Metrics: result.Metrics}
	}
	return Decision{Column: result.Move, Layer: LayerSearch, Metrics: result.Metrics}
}
