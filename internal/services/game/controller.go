package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hyperhustle/hustle-go/internal/article"
	"github.com/hyperhustle/hustle-go/internal/dependencies/clock"
	"github.com/hyperhustle/hustle-go/internal/dependencies/random"
	"github.com/hyperhustle/hustle-go/internal/model"
	"github.com/hyperhustle/hustle-go/internal/notify"
	"github.com/hyperhustle/hustle-go/internal/services/leaderboard"
	"github.com/hyperhustle/hustle-go/internal/services/timer"
	"github.com/hyperhustle/hustle-go/internal/storage"
)

const (
	// JoinCodeLength is the length of generated join codes
	JoinCodeLength = 6
	// JoinCodeAlphabet is the characters used in join codes (avoid confusing chars)
	JoinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Controller owns the race state machine. Every mutation of a game funnels
// through it; callers only ever receive snapshots.
type Controller struct {
	storage     storage.Storage
	leaderboard *leaderboard.Service
	timer       *timer.Service
	clock       clock.Clock
	random      random.Random
	notifier    notify.Notifier
	logger      *slog.Logger

	// Optional hooks, wired by the factory
	onTick      timer.TickFunc
	onUpdated   func(game *model.Game)
	onCompleted func(game *model.Game)
}

// NewController creates a new game controller
func NewController(
	storage storage.Storage,
	leaderboardService *leaderboard.Service,
	timerService *timer.Service,
	clock clock.Clock,
	random random.Random,
	notifier notify.Notifier,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:     storage,
		leaderboard: leaderboardService,
		timer:       timerService,
		clock:       clock,
		random:      random,
		notifier:    notifier,
		logger:      logger,
	}
}

// SetHooks installs event hooks for timer ticks, game snapshot changes, and
// terminal transitions. Pass nil for hooks that are not needed.
func (c *Controller) SetHooks(onTick timer.TickFunc, onUpdated, onCompleted func(game *model.Game)) {
	c.onTick = onTick
	c.onUpdated = onUpdated
	c.onCompleted = onCompleted
}

// Create produces a new pending game hosted by the given identity, with the
// host inserted as its first player. Returns the game carrying its fresh
// join code.
func (c *Controller) Create(ctx context.Context, host *model.Identity, startPage, endPage string, timeLimit int) (*model.Game, error) {
	if host == nil || host.Username == "" {
		c.notifyError(ctx, "", "", "Error", "Please set your username first")
		return nil, model.ErrUsernameRequired
	}
	if startPage == "" || endPage == "" {
		return nil, model.ErrInvalidPages
	}
	if timeLimit <= 0 {
		return nil, model.ErrInvalidTimeLimit
	}

	now := c.clock.Now()

	// Generate a unique join code
	var id model.GameID
	for {
		id = model.GameID(c.random.String(JoinCodeLength, JoinCodeAlphabet))
		exists, err := c.storage.GameExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	game := &model.Game{
		ID:        id,
		HostID:    host.ID,
		Status:    model.GameStatusPending,
		StartPage: startPage,
		EndPage:   endPage,
		TimeLimit: timeLimit,
		Players: map[model.PlayerID]*model.Player{
			host.ID: newPlayer(host, startPage),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(id)),
		slog.String("host_id", string(host.ID)),
		slog.String("start_page", startPage),
		slog.String("end_page", endPage),
		slog.Int("time_limit_s", timeLimit),
	)

	c.notifySuccess(ctx, id, host.ID, "Game created!",
		fmt.Sprintf("Share the code: %s with your friends", id))

	return game.Clone(), nil
}

// Get retrieves a snapshot of a game by join code
func (c *Controller) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, id)
}

// Join adds the identity to a pending game. Re-joining a game the identity
// is already in is a no-op success.
func (c *Controller) Join(ctx context.Context, id model.GameID, caller *model.Identity) (*model.Game, error) {
	if caller == nil || caller.Username == "" {
		c.notifyError(ctx, id, "", "Error", "Please set your username first")
		return nil, model.ErrUsernameRequired
	}

	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		c.notifyError(ctx, id, caller.ID, "Game not found", "Please check the game code")
		return nil, err
	}

	// Only pending games accept joins, existing players included
	if !game.Joinable() {
		c.notifyError(ctx, id, caller.ID, "Cannot join game", "This game has already started or ended")
		return nil, model.ErrGameNotJoinable
	}

	// Idempotent re-join while pending
	if game.PlayerByID(caller.ID) != nil {
		return game.Clone(), nil
	}

	game.Players[caller.ID] = newPlayer(caller, game.StartPage)
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("game_id", string(id)),
		slog.String("player_id", string(caller.ID)),
		slog.Int("player_count", len(game.Players)),
	)

	c.notifySuccess(ctx, id, caller.ID, "Joined game successfully",
		"Waiting for host to start the game")
	c.announce(game)

	return game.Clone(), nil
}

// Start moves a pending game to active. Host only. StartedAt and EndAt are
// derived from a single clock sample.
func (c *Controller) Start(ctx context.Context, id model.GameID, callerID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if !game.IsHost(callerID) {
		c.notifyError(ctx, id, callerID, "Not allowed", "Only the host can start the game")
		return nil, model.ErrNotHost
	}
	if game.Status != model.GameStatusPending {
		return nil, model.ErrGameNotPending
	}

	now := c.clock.Now()
	ends := now.Add(time.Duration(game.TimeLimit) * time.Second)
	game.Status = model.GameStatusActive
	game.StartedAt = &now
	game.EndAt = &ends
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.timer.Watch(game, c.onTick, c.expire)

	c.logger.Info("game started",
		slog.String("game_id", string(id)),
		slog.Time("ends_at", ends),
	)

	c.notifySuccess(ctx, id, callerID, "Game started!",
		fmt.Sprintf("Race to %s", article.Title(game.EndPage)))
	c.announce(game)

	return game.Clone(), nil
}

// HandleLinkClick records a navigation: it unconditionally increments the
// player's click count and overwrites their current page with the raw url.
// The reported url is trusted; no reachability validation happens here.
func (c *Controller) HandleLinkClick(ctx context.Context, id model.GameID, playerID model.PlayerID, url string) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	player := game.PlayerByID(playerID)
	if player == nil {
		return nil, model.ErrNotInGame
	}
	if game.Status != model.GameStatusActive {
		return nil, model.ErrGameNotActive
	}

	player.Clicks++
	player.CurrentPage = url
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	return game.Clone(), nil
}

// CheckCompletion is the sole goal-detection mechanism. It normalizes the
// reported page and the target page and compares them; on the first match it
// marks the player finished with a finish time, exactly once. Repeat calls
// after finishing return false and change nothing.
func (c *Controller) CheckCompletion(ctx context.Context, id model.GameID, playerID model.PlayerID, currentPage string) (bool, *model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return false, nil, err
	}
	player := game.PlayerByID(playerID)
	if player == nil || player.Finished {
		return false, game.Clone(), nil
	}

	if article.Normalize(currentPage) != article.Normalize(game.EndPage) {
		return false, game.Clone(), nil
	}

	finishTime := c.clock.Now()
	player.Finished = true
	player.FinishTime = &finishTime
	game.UpdatedAt = finishTime

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return false, nil, err
	}

	var timeTaken time.Duration
	if game.StartedAt != nil {
		timeTaken = finishTime.Sub(*game.StartedAt)
	}

	c.logger.Info("player finished",
		slog.String("game_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.Int("clicks", player.Clicks),
		slog.Duration("time_taken", timeTaken),
	)

	c.notifySuccess(ctx, id, playerID, "Congratulations!",
		fmt.Sprintf("You reached the destination in %d clicks and %d seconds!",
			player.Clicks, int(timeTaken.Seconds())))

	// The race ends early once nobody can make further progress
	if game.AllPlayersTerminal() {
		ended, err := c.end(ctx, game)
		if err != nil {
			return true, nil, err
		}
		return true, ended.Clone(), nil
	}

	c.announce(game)
	return true, game.Clone(), nil
}

// Kick removes a player from the game. Host only; the host can never kick
// themselves. Emptying the field does not transition the game.
func (c *Controller) Kick(ctx context.Context, id model.GameID, callerID, targetID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if !game.IsHost(callerID) {
		c.notifyError(ctx, id, callerID, "Not allowed", "Only the host can kick players")
		return nil, model.ErrNotHost
	}
	if targetID == game.HostID {
		c.notifyError(ctx, id, callerID, "Cannot kick host", "You cannot kick yourself as the host")
		return nil, model.ErrCannotKickHost
	}

	target := game.PlayerByID(targetID)
	if target == nil {
		return nil, model.ErrNotInGame
	}

	delete(game.Players, targetID)
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player kicked",
		slog.String("game_id", string(id)),
		slog.String("player_id", string(targetID)),
	)

	c.notifySuccess(ctx, id, callerID, "Player kicked",
		fmt.Sprintf("%s was removed from the game", target.Username))
	c.announce(game)

	return game.Clone(), nil
}

// Resign marks the player as having given up. Finished and resigned are
// mutually exclusive: resigning after a finish is rejected. If the
// resignation leaves every player terminal, the game completes.
func (c *Controller) Resign(ctx context.Context, id model.GameID, playerID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	player := game.PlayerByID(playerID)
	if player == nil {
		return nil, model.ErrNotInGame
	}
	if player.Finished {
		return nil, model.ErrAlreadyFinished
	}

	player.Resigned = true
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player resigned",
		slog.String("game_id", string(id)),
		slog.String("player_id", string(playerID)),
	)

	c.notifySuccess(ctx, id, playerID, "Resigned from game",
		"You have left the current game")

	if game.Status == model.GameStatusActive && game.AllPlayersTerminal() {
		ended, err := c.end(ctx, game)
		if err != nil {
			return nil, err
		}
		return ended.Clone(), nil
	}

	c.announce(game)
	return game.Clone(), nil
}

// End moves a game to completed. Safe to call on a game that has already
// completed; the leaderboard recomputation is stable.
func (c *Controller) End(ctx context.Context, id model.GameID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.Status == model.GameStatusCompleted {
		return game.Clone(), nil
	}

	ended, err := c.end(ctx, game)
	if err != nil {
		return nil, err
	}
	return ended.Clone(), nil
}

// Reset tears the game down for the caller. The host takes the whole game
// with them: the countdown stops and the record is deleted. Anyone else just
// leaves; the returned snapshot is the game without them, and a nil snapshot
// means the game is gone. Leaving does not transition the game. Identities
// and usernames are untouched either way.
func (c *Controller) Reset(ctx context.Context, id model.GameID, callerID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.PlayerByID(callerID) == nil {
		return nil, model.ErrNotInGame
	}

	if game.IsHost(callerID) {
		c.timer.Stop(id)
		if err := c.storage.DeleteGame(ctx, id); err != nil {
			return nil, err
		}

		c.logger.Info("game reset", slog.String("game_id", string(id)))
		return nil, nil
	}

	delete(game.Players, callerID)
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("player left",
		slog.String("game_id", string(id)),
		slog.String("player_id", string(callerID)),
	)
	c.announce(game)

	return game.Clone(), nil
}

// Leaderboard recomputes the ranked finishers for a game
func (c *Controller) Leaderboard(ctx context.Context, id model.GameID) ([]model.LeaderboardEntry, error) {
	game, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.leaderboard.Compute(game), nil
}

// Remaining reports the published remaining race time, if a countdown runs
func (c *Controller) Remaining(id model.GameID) (time.Duration, bool) {
	return c.timer.Remaining(id)
}

// end performs the terminal transition on an already-loaded game
func (c *Controller) end(ctx context.Context, game *model.Game) (*model.Game, error) {
	game.Status = model.GameStatusCompleted
	game.UpdatedAt = c.clock.Now()
	c.timer.Stop(game.ID)

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game completed",
		slog.String("game_id", string(game.ID)),
		slog.Int("finishers", len(c.leaderboard.Compute(game))),
	)

	if c.onCompleted != nil {
		c.onCompleted(game.Clone())
	}
	c.announce(game)

	return game, nil
}

// expire handles countdown expiry; the timer guarantees at most one call
// per countdown
func (c *Controller) expire(id model.GameID) {
	if _, err := c.End(context.Background(), id); err != nil {
		c.logger.Error("failed to end game on timer expiry",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
	}
}

func (c *Controller) announce(game *model.Game) {
	if c.onUpdated != nil {
		c.onUpdated(game.Clone())
	}
}

func newPlayer(identity *model.Identity, startPage string) *model.Player {
	return &model.Player{
		ID:          identity.ID,
		Username:    identity.Username,
		Clicks:      0,
		CurrentPage: startPage,
		Finished:    false,
		Resigned:    false,
	}
}

func (c *Controller) notifySuccess(_ context.Context, gameID model.GameID, playerID model.PlayerID, title, description string) {
	c.notifier.Notify(notify.Notification{
		GameID:      gameID,
		PlayerID:    playerID,
		Kind:        notify.KindSuccess,
		Title:       title,
		Description: description,
	})
}

func (c *Controller) notifyError(_ context.Context, gameID model.GameID, playerID model.PlayerID, title, description string) {
	c.notifier.Notify(notify.Notification{
		GameID:      gameID,
		PlayerID:    playerID,
		Kind:        notify.KindError,
		Title:       title,
		Description: description,
	})
}
