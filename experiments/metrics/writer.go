package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID of the X side
	Agent2 int // AgentConfig.ID of the O side
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// LatencyRecord is one timed move request of the latency experiment.
type LatencyRecord struct {
	Tier     int
	Sample   int
	Column   int
	Layer    string
	Duration time.Duration
	Budget   time.Duration
	TimedOut bool
}

const schema = `
CREATE TABLE IF NOT EXISTS agent_configs (
	experiment TEXT NOT NULL,
	id INTEGER NOT NULL,
	name TEXT,
	tier INTEGER
);
CREATE TABLE IF NOT EXISTS games (
	experiment TEXT NOT NULL,
	id INTEGER NOT NULL,
	agent1 INTEGER,
	agent2 INTEGER,
	starting_player INTEGER,
	winner INTEGER,
	start_time TEXT,
	end_time TEXT,
	duration_us INTEGER,
	total_moves INTEGER
);
CREATE TABLE IF NOT EXISTS moves (
	experiment TEXT NOT NULL,
	game INTEGER NOT NULL,
	step INTEGER,
	player INTEGER,
	column_index INTEGER,
	layer TEXT,
	max_depth INTEGER,
	duration_us INTEGER,
	nodes INTEGER,
	evaluations INTEGER,
	cache_hits INTEGER,
	stores INTEGER,
	timed_out INTEGER
);
CREATE TABLE IF NOT EXISTS latencies (
	experiment TEXT NOT NULL,
	tier INTEGER,
	sample INTEGER,
	column_index INTEGER,
	layer TEXT,
	duration_us INTEGER,
	budget_us INTEGER,
	timed_out INTEGER
);
`

// Writer stores experiment results in a SQLite database. Every row is tagged
// with the experiment name so one file can hold many runs.
type Writer struct {
	db         *sql.DB
	experiment string
}

func NewWriter(path, experiment string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Writer{
		db:         db,
		experiment: fmt.Sprintf("%s-%s", experiment, time.Now().UTC().Format(time.RFC3339)),
	}, nil
}

// Experiment is the name rows are tagged with: the given name plus the time
// the writer was opened.
func (w *Writer) Experiment() string {
	return w.experiment
}

func (w *Writer) Close() error {
	return w.db.Close()
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	return w.insert("agent configs",
		`INSERT INTO agent_configs (experiment, id, name, tier) VALUES (?, ?, ?, ?)`,
		len(configs), func(i int) []any {
			c := configs[i]
			return []any{w.experiment, c.ID, c.Name, c.Tier}
		})
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	return w.insert("game records",
		`INSERT INTO games (experiment, id, agent1, agent2, starting_player, winner, start_time, end_time, duration_us, total_moves)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(records), func(i int) []any {
			r := records[i]
			return []any{
				w.experiment, r.ID, r.Agent1, r.Agent2,
				int(r.StartingPlayer), int(r.Winner),
				r.StartTime.Format(time.RFC3339Nano), r.EndTime.Format(time.RFC3339Nano),
				r.Duration.Microseconds(), r.TotalMoves,
			}
		})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	return w.insert("move records",
		`INSERT INTO moves (experiment, game, step, player, column_index, layer, max_depth, duration_us, nodes, evaluations, cache_hits, stores, timed_out)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(records), func(i int) []any {
			r := records[i]
			return []any{
				w.experiment, r.Game, r.Step, int(r.Player), r.Column, r.Layer,
				r.MaxDepth, r.SearchMetric.Duration.Microseconds(),
				r.Nodes, r.Evaluations, r.CacheHits, r.Stores, r.TimedOut,
			}
		})
}

func (w *Writer) WriteLatencyRecords(records []LatencyRecord) error {
	return w.insert("latency records",
		`INSERT INTO latencies (experiment, tier, sample, column_index, layer, duration_us, budget_us, timed_out)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		len(records), func(i int) []any {
			r := records[i]
			return []any{
				w.experiment, r.Tier, r.Sample, r.Column, r.Layer,
				r.Duration.Microseconds(), r.Budget.Microseconds(), r.TimedOut,
			}
		})
}

// insert runs query once per row inside a single transaction.
func (w *Writer) insert(what, query string, n int, row func(i int) []any) error {
	ctx := context.Background()
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin writing %s: %w", what, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare %s insert: %w", what, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", what, i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", what, err)
	}
	return nil
}
