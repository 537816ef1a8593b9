package response

import (
	"sort"
	"time"

	"github.com/hyperhustle/hustle-go/internal/model"
	"github.com/hyperhustle/hustle-go/internal/services/screen"
)

// Identity represents a device identity in API responses
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// IdentityFromModel converts a model.Identity
func IdentityFromModel(i *model.Identity) Identity {
	return Identity{
		ID:       string(i.ID),
		Username: i.Username,
	}
}

// Player represents a racer in API responses
type Player struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Clicks      int        `json:"clicks"`
	CurrentPage string     `json:"current_page"`
	Finished    bool       `json:"finished"`
	FinishTime  *time.Time `json:"finish_time,omitempty"`
	Resigned    bool       `json:"resigned"`
	IsHost      bool       `json:"is_host"`
}

// PlayerFromModel converts a model.Player
func PlayerFromModel(p *model.Player, hostID model.PlayerID) Player {
	return Player{
		ID:          string(p.ID),
		Username:    p.Username,
		Clicks:      p.Clicks,
		CurrentPage: p.CurrentPage,
		Finished:    p.Finished,
		FinishTime:  p.FinishTime,
		Resigned:    p.Resigned,
		IsHost:      p.ID == hostID,
	}
}

// Game represents a game snapshot in API responses
type Game struct {
	ID        string     `json:"id"`
	HostID    string     `json:"host_id"`
	Status    string     `json:"status"`
	StartPage string     `json:"start_page"`
	EndPage   string     `json:"end_page"`
	TimeLimit int        `json:"time_limit"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndAt     *time.Time `json:"end_at,omitempty"`
	Players   []Player   `json:"players"`

	// Screen is the view the caller should be on given the game's state
	Screen string `json:"screen"`
}

// GameFromModel converts a model.Game, resolving the screen the caller
// should land on from the given intent
func GameFromModel(g *model.Game, intent screen.Screen) Game {
	players := make([]Player, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, PlayerFromModel(p, g.HostID))
	}
	// Stable ordering for clients; map iteration order is not
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })

	return Game{
		ID:        string(g.ID),
		HostID:    string(g.HostID),
		Status:    string(g.Status),
		StartPage: g.StartPage,
		EndPage:   g.EndPage,
		TimeLimit: g.TimeLimit,
		StartedAt: g.StartedAt,
		EndAt:     g.EndAt,
		Players:   players,
		Screen:    string(screen.Resolve(intent, g)),
	}
}

// ClickResult is the response after reporting a navigation
type ClickResult struct {
	Game     Game `json:"game"`
	Finished bool `json:"finished"`
}

// LeaderboardEntry is one ranked finisher
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	Clicks    int    `json:"clicks"`
	// TimeTakenMS is the finish time in milliseconds from the race start
	TimeTakenMS int64 `json:"time_taken_ms"`
}

// LeaderboardFromModel converts ranked entries
func LeaderboardFromModel(entries []model.LeaderboardEntry) []LeaderboardEntry {
	out := make([]LeaderboardEntry, len(entries))
	for i, e := range entries {
		out[i] = LeaderboardEntry{
			Rank:        i + 1,
			Username:    e.Username,
			Clicks:      e.Clicks,
			TimeTakenMS: e.TimeTaken.Milliseconds(),
		}
	}
	return out
}

// Timer reports the remaining race time
type Timer struct {
	GameID      string `json:"game_id"`
	RemainingMS int64  `json:"remaining_ms"`
	Running     bool   `json:"running"`
}

// Share carries the invite link for a game
type Share struct {
	GameID string `json:"game_id"`
	Link   string `json:"link"`
}
