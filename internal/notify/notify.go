// Package notify carries semantic user-facing notification events emitted at
// operation boundaries. Rendering is a collaborator concern; the core only
// produces the events.
package notify

import (
	"log/slog"
	"sync"

	"github.com/hyperhustle/hustle-go/internal/model"
)

// Kind classifies a notification for display
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is one user-visible event
type Notification struct {
	GameID      model.GameID   `json:"game_id,omitempty"`
	PlayerID    model.PlayerID `json:"player_id,omitempty"`
	Kind        Kind           `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
}

// Notifier consumes notification events
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the structured log
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification
func (l *LogNotifier) Notify(n Notification) {
	l.logger.Info("notification",
		slog.String("game_id", string(n.GameID)),
		slog.String("player_id", string(n.PlayerID)),
		slog.String("kind", string(n.Kind)),
		slog.String("title", n.Title),
		slog.String("description", n.Description),
	)
}

// Recorder captures notifications for assertions in tests
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewRecorder creates a Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify records the notification
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// All returns a copy of everything recorded so far
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Reset clears recorded notifications
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}

// Multi fans a notification out to several notifiers
type Multi []Notifier

// Notify forwards to every member
func (m Multi) Notify(n Notification) {
	for _, notifier := range m {
		notifier.Notify(n)
	}
}

var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*Recorder)(nil)
	_ Notifier = (Multi)(nil)
)
