package experiments

import (
	"context"
	"fmt"
	"slices"
	"time"

	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// RandomPosition plays up to plies random moves from the empty board,
// stopping before any move that would end the game.
func RandomPosition(rng *rand.Rand, plies int) game.Board {
	b := game.NewBoard()
	turn := game.Player
	for i := 0; i < plies; i++ {
		moves := b.ValidMoves()
		col := moves[rng.Intn(len(moves))]
		next, row, err := b.Play(col, turn)
		if err != nil || next.CheckWin(col, row, turn) || next.IsFull() {
			break
		}
		b = next
		turn = turn.Opponent()
	}
	return b
}

// RunLatency times samples GET_MOVE requests per tier on random mid-game
// positions and reports how many finished past the tier's budget. One engine
// is used per tier so the table warms up the way it does within a game.
func RunLatency(ctx context.Context, tiers []agent.Tier, samples int, seed uint64, w *metrics.Writer) ([]metrics.LatencyRecord, error) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))
	records := []metrics.LatencyRecord{}

	log.Info().Msgf("starting latency experiment with %d samples per tier...", samples)

	for _, tier := range tiers {
		e := engine.NewLocalEngine(engine.WithAgentOptions(agent.WithSeed(seed), agent.WithMetrics()))
		durations := make([]time.Duration, 0, samples)
		over := 0

		for i := 0; i < samples; i++ {
			board := RandomPosition(rng, 4+rng.Intn(16))
			start := time.Now()
			response, err := e.GetMove(ctx, board, tier.Level)
			if err != nil {
				return records, fmt.Errorf("failed to get move at tier %d: %w", tier.Level, err)
			}
			elapsed := time.Since(start)

			durations = append(durations, elapsed)
			if elapsed > tier.Budget() {
				over++
			}
			records = append(records, metrics.LatencyRecord{
				Tier:     tier.Level,
				Sample:   i + 1,
				Column:   response.Column,
				Layer:    string(response.Layer),
				Duration: elapsed,
				Budget:   tier.Budget(),
				TimedOut: response.Metrics.TimedOut,
			})
		}

		if len(durations) > 0 {
			slices.Sort(durations)
			log.Info().
				Int("tier", tier.Level).
				Dur("p50", durations[len(durations)/2]).
				Dur("max", durations[len(durations)-1]).
				Dur("budget", tier.Budget()).
				Int("over_budget", over).
				Msg("latency")
		}
	}

	if w != nil {
		if err := w.WriteLatencyRecords(records); err != nil {
			return records, fmt.Errorf("failed to store latency records: %w", err)
		}
		log.Info().Msgf("stored %d latency records as %s", len(records), w.Experiment())
	}
	return records, nil
}
