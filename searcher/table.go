package searcher

import (
	"sync"
	"sync/atomic"

	"connect4/game"
)

// Key identifies a memoised search result: the position, the remaining depth
// it was searched to and whose turn it was.
type Key struct {
	Board      game.Board
	Depth      int
	Maximizing bool
}

type TableStats struct {
	Size      int
	Hits      int64
	Misses    int64
	Stores    int64
	Evictions int64
}

// Table is a bounded transposition table. Entries remember their insertion
// order; once the table grows past its ceiling the oldest half is dropped.
type Table struct {
	mu      sync.Mutex
	ceiling int
	entries map[Key]int
	order   []Key

	hits      atomic.Int64
	misses    atomic.Int64
	stores    atomic.Int64
	evictions atomic.Int64
}

func NewTable(ceiling int) *Table {
	if ceiling <= 0 {
		panic("table ceiling must be positive")
	}
	return &Table{
		ceiling: ceiling,
		entries: make(map[Key]int, ceiling+1),
		order:   make([]Key, 0, ceiling+1),
	}
}

func (t *Table) Get(key Key) (int, bool) {
	t.mu.Lock()
	score, ok := t.entries[key]
	t.mu.Unlock()

	if ok {
		t.hits.Add(1)
	} else {
		t.misses.Add(1)
	}
	return score, ok
}

// Put stores a score. Overwriting an existing key keeps its original
// insertion position.
func (t *Table) Put(key Key, score int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.maintain()
	if _, ok := t.entries[key]; !ok {
		t.order = append(t.order, key)
	}
	t.entries[key] = score
	t.stores.Add(1)
}

// Maintain evicts the oldest half of the entries if the table is over its
// ceiling and returns how many were removed.
func (t *Table) Maintain() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.maintain()
}

func (t *Table) maintain() int {
	if len(t.entries) <= t.ceiling {
		return 0
	}
	n := len(t.order) / 2
	for _, key := range t.order[:n] {
		delete(t.entries, key)
	}
	// Copy so the dropped prefix does not pin the backing array
	t.order = append(make([]Key, 0, t.ceiling+1), t.order[n:]...)
	t.evictions.Add(int64(n))
	return n
}

// Clear drops every entry. Counters keep accumulating.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[Key]int, t.ceiling+1)
	t.order = make([]Key, 0, t.ceiling+1)
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *Table) Ceiling() int {
	return t.ceiling
}

func (t *Table) Stats() TableStats {
	return TableStats{
		Size:      t.Len(),
		Hits:      t.hits.Load(),
		Misses:    t.misses.Load(),
		Stores:    t.stores.Load(),
		Evictions: t.evictions.Load(),
	}
}
