package experiments

import (
	"context"
	"fmt"
	"time"

	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/gamemaster"
	"connect4/meta"
	"connect4/player"
	"connect4/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const NumGames = 10 // Per match up

// Tournament plays every match up NumGames times. The first config of a
// match up plays X and the second O; the starting side alternates between
// games.
type Tournament struct {
	Name         string
	Configs      []metrics.AgentConfig
	MatchUps     [][2]metrics.AgentConfig
	Games        int
	TableCeiling int
	Seed         uint64
}

// TierTournament pairs every tier against every stronger tier.
func TierTournament(games int) Tournament {
	configs := []metrics.AgentConfig{}
	for _, tier := range agent.Tiers() {
		configs = append(configs, metrics.AgentConfig{
			ID:   tier.Level,
			Name: fmt.Sprintf("tier %d", tier.Level),
			Tier: tier.Level,
		})
	}

	matchUps := [][2]metrics.AgentConfig{}
	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			matchUps = append(matchUps, [2]metrics.AgentConfig{configs[i], configs[j]})
		}
	}

	return Tournament{
		Name:     "tiers",
		Configs:  configs,
		MatchUps: matchUps,
		Games:    games,
	}
}

type Summary struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Wins  map[int]int // By AgentConfig.ID
	Draws int
}

type gameResult struct {
	record metrics.GameRecord
	moves  []metrics.MoveMetric
}

// RunTournament plays all games of t, up to meta.GO_ROUTINES at a time, and
// stores the results with w when it is not nil. Every player gets its own
// engine so concurrent games never share a table.
func RunTournament(ctx context.Context, t Tournament, w *metrics.Writer) (Summary, error) {
	games := t.Games
	if games <= 0 {
		games = NumGames
	}
	ceiling := t.TableCeiling
	if ceiling <= 0 {
		ceiling = meta.MAX_TABLE_SIZE
	}
	seed := t.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	log.Info().Msgf("starting %s experiment with %d match ups of %d games...", t.Name, len(t.MatchUps), games)

	results := make([]gameResult, len(t.MatchUps)*games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(meta.GO_ROUTINES)

	for mi, matchUp := range t.MatchUps {
		for i := 0; i < games; i++ {
			id := mi*games + i + 1
			starting := game.Player
			if i%2 == 1 {
				starting = game.AI
			}
			g.Go(func() error {
				result, err := runGame(ctx, matchUp, starting, ceiling, seed+uint64(id))
				if err != nil {
					return fmt.Errorf("game %d: %w", id, err)
				}
				results[id-1] = gameResult{
					record: metrics.GameRecord{
						ID:         id,
						Agent1:     matchUp[0].ID,
						Agent2:     matchUp[1].ID,
						GameMetric: result.Game,
					},
					moves: result.Moves,
				}
				log.Info().Msgf("completed match up %d of %d game %d of %d with winner: %s", mi+1, len(t.MatchUps), i+1, games, result.Winner)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{Wins: make(map[int]int)}
	for _, r := range results {
		summary.Games = append(summary.Games, r.record)
		for _, mm := range r.moves {
			summary.Moves = append(summary.Moves, metrics.MoveRecord{Game: r.record.ID, MoveMetric: mm})
		}
		switch r.record.Winner {
		case game.Player:
			summary.Wins[r.record.Agent1]++
		case game.AI:
			summary.Wins[r.record.Agent2]++
		default:
			summary.Draws++
		}
	}
	log.Info().Msgf("completed %s experiment: wins=%v draws=%d", t.Name, summary.Wins, summary.Draws)

	if w == nil {
		return summary, nil
	}
	if err := w.WriteAgentConfigs(t.Configs); err != nil {
		return summary, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := w.WriteGameRecords(summary.Games); err != nil {
		return summary, fmt.Errorf("failed to store game records: %w", err)
	}
	if err := w.WriteMoveRecords(summary.Moves); err != nil {
		return summary, fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msgf("stored %d games and %d moves as %s", len(summary.Games), len(summary.Moves), w.Experiment())
	return summary, nil
}

// runGame executes a single game between two agents.
func runGame(ctx context.Context, matchUp [2]metrics.AgentConfig, starting game.Cell, ceiling int, seed uint64) (gamemaster.Result, error) {
	players := [2]player.Player{}
	for i, config := range matchUp {
		e := engine.NewLocalEngine(
			engine.WithTableCeiling(ceiling),
			engine.WithAgentOptions(agent.WithSeed(seed+uint64(i)), agent.WithMetrics()),
		)
		players[i] = player.NewEnginePlayer(config.Name, e, config.Tier)
	}

	gm := gamemaster.NewGameMaster(players[0], players[1], gamemaster.WithMetrics())
	return gm.Run(ctx, starting)
}
