package agent

import (
	"time"

	"connect4/meta"
)

// Tier is the playing strength of one difficulty level.
type Tier struct {
	Level        int
	MaxDepth     int
	RandomFactor float64       // Probability of skipping tactics and deviating from the search
	Lookahead    int           // Plies of the narrow future-win search; 1 disables it
	TrapWeight   float64       // Zero disables the trap layer
	TimeLimit    time.Duration // Zero selects the default budget
}

var tiers = map[int]Tier{
	1: {Level: 1, MaxDepth: 2, RandomFactor: 0.35, Lookahead: 1},
	2: {Level: 2, MaxDepth: 3, RandomFactor: 0.2, Lookahead: 2},
	3: {Level: 3, MaxDepth: 5, RandomFactor: 0.08, Lookahead: 3},
	4: {Level: 4, MaxDepth: 6, RandomFactor: 0.03, Lookahead: 4, TrapWeight: 1.3},
	5: {Level: 5, MaxDepth: 6, RandomFactor: 0, Lookahead: 5, TrapWeight: 1.5, TimeLimit: 600 * time.Millisecond},
}

// TierFor returns the tier of a difficulty level. Unknown levels fall back
// to the default tier as a whole, level included.
func TierFor(level int) Tier {
	if t, ok := tiers[level]; ok {
		return t
	}
	return tiers[meta.DEFAULT_TIER]
}

// Tiers returns every tier from the weakest to the strongest.
func Tiers() []Tier {
	out := make([]Tier, 0, len(tiers))
	for level := 1; level <= len(tiers); level++ {
		out = append(out, tiers[level])
	}
	return out
}

// Budget is the search time limit: TimeLimit when set, else 800ms plus 100ms
// per level.
func (t Tier) Budget() time.Duration {
	if t.TimeLimit > 0 {
		return t.TimeLimit
	}
	return time.Duration(800+100*t.Level) * time.Millisecond
}
