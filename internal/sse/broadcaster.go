package sse

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hyperhustle/hustle-go/internal/model"
	"github.com/hyperhustle/hustle-go/internal/notify"
)

// Event names sent to connected clients
const (
	EventGameUpdated   = "game_updated"
	EventTimerTick     = "timer_tick"
	EventNotification  = "notification"
	EventGameCompleted = "game_completed"
)

// Broadcaster pushes game events to the SSE clients of a game
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// gameUpdate is the wire shape of a game_updated event
type gameUpdate struct {
	GameID  string `json:"game_id"`
	Status  string `json:"status"`
	Players int    `json:"players"`
}

// timerTick is the wire shape of a timer_tick event
type timerTick struct {
	GameID      string `json:"game_id"`
	RemainingMS int64  `json:"remaining_ms"`
}

// BroadcastGameUpdated announces any change to the game snapshot
func (b *Broadcaster) BroadcastGameUpdated(game *model.Game) {
	hub := b.hubManager.GetHub(game.ID)
	if hub == nil {
		return
	}
	b.sendJSON(hub, EventGameUpdated, gameUpdate{
		GameID:  string(game.ID),
		Status:  string(game.Status),
		Players: len(game.Players),
	})
}

// BroadcastTimerTick publishes the remaining race time for display
func (b *Broadcaster) BroadcastTimerTick(gameID model.GameID, remaining time.Duration) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}
	b.sendJSON(hub, EventTimerTick, timerTick{
		GameID:      string(gameID),
		RemainingMS: remaining.Milliseconds(),
	})
}

// BroadcastGameCompleted announces the terminal transition
func (b *Broadcaster) BroadcastGameCompleted(gameID model.GameID) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}
	hub.BroadcastEvent(EventGameCompleted, `{"game_id":"`+string(gameID)+`"}`)
}

// Notify implements notify.Notifier, fanning notifications out to the
// clients of the originating game
func (b *Broadcaster) Notify(n notify.Notification) {
	if n.GameID == "" {
		return
	}
	hub := b.hubManager.GetHub(n.GameID)
	if hub == nil {
		return
	}
	b.sendJSON(hub, EventNotification, n)
}

var _ notify.Notifier = (*Broadcaster)(nil)

func (b *Broadcaster) sendJSON(hub *Hub, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("sse failed to marshal event",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(event, string(data))
}
