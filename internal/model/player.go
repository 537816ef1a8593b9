package model

import "time"

// PlayerID uniquely identifies a player across the system.
// It is the same value as the player's device identity token.
type PlayerID string

// Player represents one participant's progress record within a game.
// Player values are owned by their Game's player map; all mutation goes
// through the game controller.
type Player struct {
	ID          PlayerID
	Username    string
	Clicks      int
	CurrentPage string
	Finished    bool
	FinishTime  *time.Time // set exactly once, when the target is first reached
	Resigned    bool
}

// Terminal reports whether the player can make no further progress.
func (p *Player) Terminal() bool {
	return p.Finished || p.Resigned
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	cp := *p
	if p.FinishTime != nil {
		t := *p.FinishTime
		cp.FinishTime = &t
	}
	return &cp
}

// Identity is the stable per-device record behind a PlayerID.
// Issued once and persisted; the username is freely settable.
type Identity struct {
	ID        PlayerID
	Username  string
	CreatedAt time.Time
}
