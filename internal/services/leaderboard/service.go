// Package leaderboard ranks the finishers of a game.
package leaderboard

import (
	"sort"
	"time"

	"github.com/hyperhustle/hustle-go/internal/model"
)

// Service derives leaderboards from game state. It holds no state of its
// own: every call recomputes the ranking from scratch so it can never drift
// from the authoritative player data.
type Service struct{}

// New creates a new leaderboard service
func New() *Service {
	return &Service{}
}

// Compute returns the ranked finishers for a game: players who finished
// without resigning, ordered by fewest clicks, ties broken by least time
// from game start to finish. A nil game yields no entries.
func (s *Service) Compute(game *model.Game) []model.LeaderboardEntry {
	if game == nil {
		return nil
	}

	entries := make([]model.LeaderboardEntry, 0, len(game.Players))
	for _, p := range game.Players {
		if !p.Finished || p.Resigned || p.FinishTime == nil {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			Username:  p.Username,
			Clicks:    p.Clicks,
			TimeTaken: timeTaken(game, p),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Clicks != entries[j].Clicks {
			return entries[i].Clicks < entries[j].Clicks
		}
		return entries[i].TimeTaken < entries[j].TimeTaken
	})

	return entries
}

// timeTaken measures from game start to the player's finish. A game with no
// recorded start counts from the zero instant, matching the display-only
// nature of the value.
func timeTaken(game *model.Game, p *model.Player) time.Duration {
	if game.StartedAt == nil {
		return p.FinishTime.Sub(time.Time{})
	}
	return p.FinishTime.Sub(*game.StartedAt)
}
