package model

import "time"

// GameID is the short shareable join code identifying a game.
type GameID string

// GameStatus represents the current phase of a game.
type GameStatus string

const (
	GameStatusPending   GameStatus = "pending"   // Accepting joins, host not yet started
	GameStatusActive    GameStatus = "active"    // Timer running, players navigating
	GameStatusCompleted GameStatus = "completed" // Terminal; leaderboard final
)

// Game represents a single race from one article to another.
type Game struct {
	ID        GameID
	HostID    PlayerID
	Status    GameStatus
	StartPage string
	EndPage   string

	// TimeLimit is the race time budget in seconds.
	TimeLimit int

	// StartedAt and EndAt are set together, from the same clock sample,
	// on the transition to active.
	StartedAt *time.Time
	EndAt     *time.Time

	// Players is keyed by device identity; unordered. Display ordering is
	// reconstructed by callers.
	Players map[PlayerID]*Player

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerByID returns the player with the given id, or nil if not in the game.
func (g *Game) PlayerByID(id PlayerID) *Player {
	return g.Players[id]
}

// IsHost reports whether the given player created the game.
func (g *Game) IsHost(id PlayerID) bool {
	return g.HostID == id
}

// Joinable reports whether new players may still enter.
func (g *Game) Joinable() bool {
	return g.Status == GameStatusPending
}

// AllPlayersTerminal reports whether every player has finished or resigned.
func (g *Game) AllPlayersTerminal() bool {
	for _, p := range g.Players {
		if !p.Terminal() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the game, players included. Controllers hand
// clones to callers so no external code holds a mutable reference to stored
// state.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	cp := *g
	if g.StartedAt != nil {
		t := *g.StartedAt
		cp.StartedAt = &t
	}
	if g.EndAt != nil {
		t := *g.EndAt
		cp.EndAt = &t
	}
	cp.Players = make(map[PlayerID]*Player, len(g.Players))
	for id, p := range g.Players {
		cp.Players[id] = p.Clone()
	}
	return &cp
}
