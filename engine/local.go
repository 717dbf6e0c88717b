package engine

import (
	"context"
	"sync"
	"time"

	"connect4/game"
	"connect4/meta"
	"connect4/searcher"
	"connect4/searcher/agent"

	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

func WithTableCeiling(ceiling int) Option {
	return func(e *LocalEngine) {
		if ceiling > 0 {
			e.ceiling = ceiling
		}
	}
}

// WithAgentOptions configures the agent the engine plays with.
func WithAgentOptions(options ...agent.Option) Option {
	return func(e *LocalEngine) {
		e.agentOptions = append(e.agentOptions, options...)
	}
}

// LocalEngine answers requests in process. It owns one transposition table
// that persists across requests until Reset, and handles one request at a
// time.
type LocalEngine struct {
	mu           sync.Mutex
	ceiling      int
	agentOptions []agent.Option
	table        *searcher.Table
	agent        agent.Agent
}

func NewLocalEngine(options ...Option) *LocalEngine {
	e := &LocalEngine{ // Default values
		ceiling: meta.MAX_TABLE_SIZE,
	}
	for _, option := range options {
		option(e)
	}
	e.table = searcher.NewTable(e.ceiling)
	e.agent = agent.NewTieredAgent(e.table, e.agentOptions...)
	return e
}

func (e *LocalEngine) GetMove(ctx context.Context, board game.Board, difficulty int) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	decision := e.agent.FindMove(ctx, board, agent.TierFor(difficulty))
	return Response{
		Column:  decision.Column,
		Layer:   decision.Layer,
		Metrics: decision.Metrics,
	}, nil
}

func (e *LocalEngine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	size := e.table.Len()
	e.table.Clear()
	log.Info().Msgf("reset transposition table, dropped %d entries", size)
	return nil
}

// Maintain evicts the oldest half of the table if it is over its ceiling. It
// is safe to call while a search is running.
func (e *LocalEngine) Maintain() int {
	evicted := e.table.Maintain()
	if evicted > 0 {
		log.Debug().Msgf("evicted %d transposition table entries", evicted)
	}
	return evicted
}

// StartMaintenance calls Maintain every interval until ctx is done.
func (e *LocalEngine) StartMaintenance(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		panic("Must specify a maintenance interval")
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				e.Maintain()
			}
		}
	}()
}

func (e *LocalEngine) Stats() searcher.TableStats {
	return e.table.Stats()
}
