// meta/meta.go
package meta

import "time"

// MAX_TABLE_SIZE is the transposition table ceiling. Past it the oldest half
// of the entries is evicted.
const MAX_TABLE_SIZE = 15000

// MAINTENANCE_INTERVAL is how often hosts sweep their engines' tables.
const MAINTENANCE_INTERVAL = 30 * time.Second

// SESSION_TTL is how long an idle server session keeps its engine.
const SESSION_TTL = 30 * time.Minute

// DEFAULT_TIER is used for difficulty levels outside 1-5.
const DEFAULT_TIER = 3

// MAX_TURNS is the number of cells; a game cannot last longer.
const MAX_TURNS = 42

// GO_ROUTINES bounds the number of games an experiment runs at once.
const GO_ROUTINES = 8
