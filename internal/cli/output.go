package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Identity:
		o.printIdentity(v)
	case Game:
		o.printGame(v)
	case ClickResult:
		o.printClickResult(v)
	case []LeaderboardEntry:
		o.printLeaderboard(v)
	case TimerResult:
		o.printTimer(v)
	case ShareResult:
		o.printShare(v)
	case HealthResult:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Identity response type (matches API)
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// GamePlayer response type
type GamePlayer struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Clicks      int        `json:"clicks"`
	CurrentPage string     `json:"current_page"`
	Finished    bool       `json:"finished"`
	FinishTime  *time.Time `json:"finish_time,omitempty"`
	Resigned    bool       `json:"resigned"`
	IsHost      bool       `json:"is_host"`
}

// Game response type
type Game struct {
	ID        string       `json:"id"`
	HostID    string       `json:"host_id"`
	Status    string       `json:"status"`
	StartPage string       `json:"start_page"`
	EndPage   string       `json:"end_page"`
	TimeLimit int          `json:"time_limit"`
	StartedAt *time.Time   `json:"started_at,omitempty"`
	EndAt     *time.Time   `json:"end_at,omitempty"`
	Players   []GamePlayer `json:"players"`
	Screen    string       `json:"screen"`
}

// ClickResult response type
type ClickResult struct {
	Game     Game `json:"game"`
	Finished bool `json:"finished"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	Clicks      int    `json:"clicks"`
	TimeTakenMS int64  `json:"time_taken_ms"`
}

// TimerResult response type
type TimerResult struct {
	GameID      string `json:"game_id"`
	RemainingMS int64  `json:"remaining_ms"`
	Running     bool   `json:"running"`
}

// ShareResult response type
type ShareResult struct {
	GameID string `json:"game_id"`
	Link   string `json:"link"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printIdentity(i Identity) {
	fmt.Printf("Username: %s\n", i.Username)
	fmt.Printf("Device token: %s\n", i.ID)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s (%s)\n", g.ID, g.Status)
	fmt.Printf("Route: %s -> %s\n", g.StartPage, g.EndPage)
	fmt.Printf("Time limit: %ds\n", g.TimeLimit)
	if g.EndAt != nil {
		fmt.Printf("Ends at: %s\n", g.EndAt.Format(time.RFC3339))
	}
	fmt.Printf("Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		marker := ""
		if p.IsHost {
			marker = " [host]"
		}
		state := "racing"
		switch {
		case p.Finished:
			state = "finished"
		case p.Resigned:
			state = "resigned"
		case g.Status == "pending":
			state = "waiting"
		}
		fmt.Printf("  %s%s - %d clicks, %s, at %s\n", p.Username, marker, p.Clicks, state, p.CurrentPage)
	}
}

func (o *Output) printClickResult(r ClickResult) {
	if r.Finished {
		fmt.Println("You reached the destination!")
	}
	o.printGame(r.Game)
}

func (o *Output) printLeaderboard(entries []LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Println("No finishers yet")
		return
	}
	for _, e := range entries {
		taken := time.Duration(e.TimeTakenMS) * time.Millisecond
		fmt.Printf("%d. %s - %d clicks in %s\n", e.Rank, e.Username, e.Clicks, taken)
	}
}

func (o *Output) printTimer(t TimerResult) {
	if !t.Running {
		fmt.Printf("Game %s: no countdown running\n", t.GameID)
		return
	}
	remaining := time.Duration(t.RemainingMS) * time.Millisecond
	fmt.Printf("Game %s: %s remaining\n", t.GameID, remaining.Round(time.Second))
}

func (o *Output) printShare(s ShareResult) {
	fmt.Printf("Join link for %s:\n%s\n", s.GameID, s.Link)
}

func (o *Output) printHealth(h HealthResult) {
	fmt.Printf("Server status: %s\n", h.Status)
}
