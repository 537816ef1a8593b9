// Package timer runs the countdown for active games. A countdown's lifetime
// is scoped exactly to "the game exists and is active": it starts on the
// transition to active and is cancelled on every path that ends, resets, or
// replaces the game, so a stale tick can never fire against discarded state.
package timer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hyperhustle/hustle-go/internal/dependencies/clock"
	"github.com/hyperhustle/hustle-go/internal/model"
)

// DefaultPeriod is how often remaining time is recomputed and published
const DefaultPeriod = time.Second

// TickFunc receives the remaining duration on every recomputation
type TickFunc func(gameID model.GameID, remaining time.Duration)

// ExpireFunc is invoked exactly once when the deadline passes
type ExpireFunc func(gameID model.GameID)

// Service owns at most one countdown per game
type Service struct {
	clock  clock.Clock
	period time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	watches map[model.GameID]*watch
}

type watch struct {
	cancel chan struct{}
	once   sync.Once // guards cancel so double Stop is safe

	mu        sync.RWMutex
	remaining time.Duration
}

// New creates a timer service recomputing every period (DefaultPeriod if
// period is zero or negative)
func New(clk clock.Clock, period time.Duration, logger *slog.Logger) *Service {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Service{
		clock:   clk,
		period:  period,
		logger:  logger,
		watches: make(map[model.GameID]*watch),
	}
}

// Watch starts the countdown for an active game with a deadline. Any
// existing countdown for the same game is cancelled first. Games that are
// not active or carry no deadline are ignored.
func (s *Service) Watch(game *model.Game, onTick TickFunc, onExpire ExpireFunc) {
	if game == nil || game.Status != model.GameStatusActive || game.EndAt == nil {
		return
	}

	w := &watch{cancel: make(chan struct{})}
	w.remaining = s.remainingUntil(*game.EndAt)

	s.mu.Lock()
	if old, ok := s.watches[game.ID]; ok {
		old.stop()
	}
	s.watches[game.ID] = w
	s.mu.Unlock()

	s.logger.Info("countdown started",
		slog.String("game_id", string(game.ID)),
		slog.Time("deadline", *game.EndAt),
	)

	go s.run(game.ID, *game.EndAt, w, onTick, onExpire)
}

func (s *Service) run(gameID model.GameID, deadline time.Time, w *watch, onTick TickFunc, onExpire ExpireFunc) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-w.cancel:
			return
		case <-ticker.C:
			remaining := s.remainingUntil(deadline)

			w.mu.Lock()
			w.remaining = remaining
			w.mu.Unlock()

			if onTick != nil {
				onTick(gameID, remaining)
			}

			if remaining <= 0 {
				s.Stop(gameID)
				s.logger.Info("countdown expired", slog.String("game_id", string(gameID)))
				if onExpire != nil {
					onExpire(gameID)
				}
				return
			}
		}
	}
}

// Remaining reports the current published remaining duration for a game.
// ok is false when no countdown is running.
func (s *Service) Remaining(gameID model.GameID) (time.Duration, bool) {
	s.mu.Lock()
	w, ok := s.watches[gameID]
	s.mu.Unlock()
	if !ok {
		return 0, false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.remaining, true
}

// Stop cancels the countdown for a game, if one is running
func (s *Service) Stop(gameID model.GameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.watches[gameID]; ok {
		w.stop()
		delete(s.watches, gameID)
	}
}

// StopAll cancels every running countdown
func (s *Service) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for gameID, w := range s.watches {
		w.stop()
		delete(s.watches, gameID)
	}
}

func (s *Service) remainingUntil(deadline time.Time) time.Duration {
	remaining := deadline.Sub(s.clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (w *watch) stop() {
	w.once.Do(func() {
		close(w.cancel)
	})
}
