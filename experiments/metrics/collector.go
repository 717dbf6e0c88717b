package metrics

import (
	"time"

	"connect4/game"
	"connect4/searcher"
)

// AgentConfig describes one contestant of an experiment. Tier is 0 for
// players that do not search.
type AgentConfig struct {
	ID   int
	Name string
	Tier int
}

type MoveMetric struct {
	Step   int
	Player game.Cell
	Column int
	Layer  string
	searcher.SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Cell
	Winner         game.Cell // Empty for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector records the moves of one game.
type Collector interface {
	Start(starting game.Cell)
	AddMove(move MoveMetric)
	Complete(winner game.Cell) (GameMetric, []MoveMetric)
}

type collector struct {
	starting  game.Cell
	startTime time.Time
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(starting game.Cell) {
	c.starting = starting
	c.startTime = time.Now()
	c.moves = nil
}

func (c *collector) AddMove(move MoveMetric) {
	move.Step = len(c.moves) + 1
	c.moves = append(c.moves, move)
}

func (c *collector) Complete(winner game.Cell) (GameMetric, []MoveMetric) {
	end := time.Now()
	return GameMetric{
		StartingPlayer: c.starting,
		Winner:         winner,
		StartTime:      c.startTime,
		EndTime:        end,
		Duration:       end.Sub(c.startTime),
		TotalMoves:     len(c.moves),
	}, c.moves
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(starting game.Cell) {}
func (c *dummyCollector) AddMove(move MoveMetric)  {}
func (c *dummyCollector) Complete(winner game.Cell) (GameMetric, []MoveMetric) {
	return GameMetric{Winner: winner}, nil
}
