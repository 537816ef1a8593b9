package model

import "time"

// LeaderboardEntry is one finisher's line on the ranked results.
// Entries are derived values, recomputed from game state on demand and never
// stored as source of truth.
type LeaderboardEntry struct {
	Username  string
	Clicks    int
	TimeTaken time.Duration
}
