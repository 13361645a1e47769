package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/game"
	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/storage"
	"github.com/mcoot/tictactoe-go/internal/storage/memory"
	redisstorage "github.com/mcoot/tictactoe-go/internal/storage/redis"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
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
	BotService *bot.Service
	HubManager *sse.HubManager
	Renderer   *sse.Renderer
	Sessions   *session.Manager

	closers []func() error
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
	// ThinkDelay is the pause before each bot move
	// If zero, defaults to game.DefaultThinkDelay
	ThinkDelay time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	var closers []func() error
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
		closers = append(closers, redisStore.Close)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	thinkDelay := cfg.ThinkDelay
	if thinkDelay == 0 {
		thinkDelay = game.DefaultThinkDelay
	}

	app := newWithDependencies(store, clock.New(), random.New(), thinkDelay, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, thinkDelay time.Duration, logger *slog.Logger) *App {
	botService := bot.NewService(bot.DefaultStrategies(rnd), logger)
	hubManager := sse.NewHubManager(logger)
	renderer := sse.NewRenderer()

	presenters := func(id model.SessionID) game.Presenter {
		return sse.NewSessionPresenter(id, hubManager, renderer, clk, logger)
	}
	sessions := session.NewManager(store, botService, presenters, clk, rnd, thinkDelay, logger)

	return &App{
		Storage:    store,
		Clock:      clk,
		Random:     rnd,
		BotService: botService,
		HubManager: hubManager,
		Renderer:   renderer,
		Sessions:   sessions,
	}
}

// Close stops every session and releases storage connections
func (a *App) Close() error {
	a.Sessions.Shutdown()
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
