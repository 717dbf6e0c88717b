package searcher

import (
	"context"
	"math"
	"slices"
	"time"

	"connect4/game"
	"connect4/meta"
)

type Option func(a *AlphaBeta)

// Result is the outcome of one root search. TimedOut reports that the
// deadline cut the search short; Move is then the best fully searched root
// move, or the first ordered move if none completed.
type Result struct {
	Move     int
	Score    int
	TimedOut bool
	Metrics  SearchMetric
}

// AlphaBeta is a depth-limited minimax searcher with alpha-beta pruning and a
// transposition table. It is not safe for concurrent searches; callers
// serialise access.
type AlphaBeta struct {
	depth    int
	duration time.Duration
	table    *Table
	evaluate game.Evaluator
	metrics  MetricsCollector
}

func WithDepth(depth int) Option {
	return func(a *AlphaBeta) {
		if depth > 0 {
			a.depth = depth
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(a *AlphaBeta) {
		if duration > 0 {
			a.duration = duration
		}
	}
}

// WithTable shares a table across searches. Without it every searcher owns a
// private table.
func WithTable(table *Table) Option {
	return func(a *AlphaBeta) {
		if table != nil {
			a.table = table
		}
	}
}

func WithEvaluator(evaluate game.Evaluator) Option {
	return func(a *AlphaBeta) {
		if evaluate != nil {
			a.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(a *AlphaBeta) {
		a.metrics = NewMetricsCollector()
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	a := &AlphaBeta{ // Default values
		evaluate: game.Evaluate,
		metrics:  NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(a)
	}
	if a.depth <= 0 || a.duration <= 0 {
		panic("Must specify search depth and duration")
	}
	if a.table == nil {
		a.table = NewTable(meta.MAX_TABLE_SIZE)
	}
	return a
}

func (a *AlphaBeta) Table() *Table {
	return a.table
}

// Search picks the AI's move on b. Root children are tried center first and
// each is searched to the full configured depth with the opponent to move.
// The best move only changes on a strictly better score, so ties keep the
// more central column.
func (a *AlphaBeta) Search(ctx context.Context, b game.Board) Result {
	a.metrics.Start(a.depth, a.duration)
	moves := OrderMoves(b.ValidMoves())
	if len(moves) == 0 {
		return Result{Move: game.NoMove, Metrics: a.metrics.Complete()}
	}

	s := &search{
		timer:    newTimer(ctx, a.duration),
		table:    a.table,
		evaluate: a.evaluate,
		metrics:  a.metrics,
	}

	best, bestScore, completed := moves[0], math.MinInt, 0
	for _, col := range moves {
		if s.timer.expired() {
			break
		}
		child, _, err := b.Play(col, game.AI)
		if err != nil {
			continue
		}
		score, ok := s.minimax(child, a.depth, math.MinInt, math.MaxInt, false)
		if !ok {
			break
		}
		completed++
		if score > bestScore {
			best, bestScore = col, score
		}
	}

	timedOut := completed < len(moves)
	if timedOut {
		a.metrics.SetTimedOut()
	}
	if completed == 0 {
		bestScore = 0
	}
	return Result{
		Move:     best,
		Score:    bestScore,
		TimedOut: timedOut,
		Metrics:  a.metrics.Complete(),
	}
}

type search struct {
	timer    *timer
	table    *Table
	evaluate game.Evaluator
	metrics  MetricsCollector
}

// minimax returns the score of b searched to depth. ok is false when the
// deadline passed before the subtree completed; such scores are never cached
// and must not be compared by the caller.
func (s *search) minimax(b game.Board, depth, alpha, beta int, maximizing bool) (score int, ok bool) {
	if s.timer.expired() {
		return 0, false
	}
	s.metrics.AddNode()

	key := Key{Board: b, Depth: depth, Maximizing: maximizing}
	if cached, hit := s.table.Get(key); hit {
		s.metrics.AddCacheHit()
		return cached, true
	}

	if depth == 0 || b.IsTerminal() {
		score = s.evaluate(b)
		s.metrics.AddEvaluation()
		s.store(key, score)
		return score, true
	}

	moves := OrderMoves(b.ValidMoves())
	if len(moves) == 0 { // Draw
		s.store(key, 0)
		return 0, true
	}

	mover := game.Player
	if maximizing {
		mover = game.AI
		score = math.MinInt
	} else {
		score = math.MaxInt
	}

	for _, col := range moves {
		if s.timer.expired() {
			return 0, false
		}
		child, _, err := b.Play(col, mover)
		if err != nil {
			continue
		}
		value, ok := s.minimax(child, depth-1, alpha, beta, !maximizing)
		if !ok {
			return 0, false
		}
		if maximizing {
			score = max(score, value)
			alpha = max(alpha, score)
		} else {
			score = min(score, value)
			beta = min(beta, score)
		}
		if beta <= alpha {
			break
		}
	}

	s.store(key, score)
	return score, true
}

func (s *search) store(key Key, score int) {
	s.table.Put(key, score)
	s.metrics.AddStore()
}

// OrderMoves returns the columns sorted by distance from the center. The sort
// is stable, so equally distant columns keep their relative order.
func OrderMoves(moves []int) []int {
	ordered := slices.Clone(moves)
	slices.SortStableFunc(ordered, func(a, b int) int {
		return centerDistance(a) - centerDistance(b)
	})
	return ordered
}

func centerDistance(col int) int {
	if col < game.Center {
		return game.Center - col
	}
	return col - game.Center
}

// timer reports expiry of either the search budget or the caller's context.
type timer struct {
	deadline time.Time
	done     <-chan struct{}
}

func newTimer(ctx context.Context, budget time.Duration) *timer {
	deadline := time.Now().Add(budget)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	return &timer{deadline: deadline, done: ctx.Done()}
}

func (t *timer) expired() bool {
	select {
	case <-t.done:
		return true
	default:
		return !time.Now().Before(t.deadline)
	}
}
