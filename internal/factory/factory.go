package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/hyperhustle/hustle-go/internal/dependencies/clock"
	"github.com/hyperhustle/hustle-go/internal/dependencies/random"
	"github.com/hyperhustle/hustle-go/internal/model"
	"github.com/hyperhustle/hustle-go/internal/notify"
	"github.com/hyperhustle/hustle-go/internal/services/content"
	"github.com/hyperhustle/hustle-go/internal/services/game"
	"github.com/hyperhustle/hustle-go/internal/services/identity"
	"github.com/hyperhustle/hustle-go/internal/services/leaderboard"
	"github.com/hyperhustle/hustle-go/internal/services/timer"
	"github.com/hyperhustle/hustle-go/internal/sse"
	"github.com/hyperhustle/hustle-go/internal/storage"
	"github.com/hyperhustle/hustle-go/internal/storage/memory"
	redisstorage "github.com/hyperhustle/hustle-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	IdentityService    *identity.Service
	LeaderboardService *leaderboard.Service
	TimerService       *timer.Service
	GameController     *game.Controller
	ContentService     *content.Service
	HubManager         *sse.HubManager
	Broadcaster        *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// WikiBaseURL is the origin articles are proxied from (optional)
	WikiBaseURL string
	// BaseURL is the public origin used in share links (optional)
	BaseURL string
	// TimerPeriod overrides the countdown publish interval (optional)
	TimerPeriod time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	// Notifications go into the log and out to connected clients
	notifier := notify.Multi{notify.NewLogNotifier(logger), broadcaster}

	period := cfg.TimerPeriod
	if period == 0 {
		period = timer.DefaultPeriod
	}

	identityService := identity.New(store, clk, rnd, logger)
	leaderboardService := leaderboard.New()
	timerService := timer.New(clk, period, logger)
	gameController := game.NewController(store, leaderboardService, timerService, clk, rnd, notifier, logger)
	contentService := content.New(cfg.WikiBaseURL, nil, notifier, logger)

	gameController.SetHooks(
		broadcaster.BroadcastTimerTick,
		broadcaster.BroadcastGameUpdated,
		func(g *model.Game) { broadcaster.BroadcastGameCompleted(g.ID) },
	)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		IdentityService:    identityService,
		LeaderboardService: leaderboardService,
		TimerService:       timerService,
		GameController:     gameController,
		ContentService:     contentService,
		HubManager:         hubManager,
		Broadcaster:        broadcaster,
	}
}

// Close releases background resources held by the app
func (a *App) Close() {
	a.TimerService.StopAll()
	a.HubManager.CloseAll()
}
