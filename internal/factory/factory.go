package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/9910597111/BlindSketch-Game/internal/dependencies/clock"
	"github.com/9910597111/BlindSketch-Game/internal/dependencies/random"
	"github.com/9910597111/BlindSketch-Game/internal/services/room"
	"github.com/9910597111/BlindSketch-Game/internal/services/scoring"
	"github.com/9910597111/BlindSketch-Game/internal/services/words"
	"github.com/9910597111/BlindSketch-Game/internal/storage"
	"github.com/9910597111/BlindSketch-Game/internal/storage/memory"
	redisstorage "github.com/9910597111/BlindSketch-Game/internal/storage/redis"
	"github.com/9910597111/BlindSketch-Game/internal/ws"
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
	ScoringService *scoring.Service
	WordsService   *words.Service
	RoomRegistry   *room.Registry

	// Transport
	Hub       *ws.Hub
	WSHandler *ws.Handler
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
	// RoomRetention is how long finished or drained rooms are kept
	// If zero, defaults to room.DefaultRetention
	RoomRetention time.Duration
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

	return newWithDependencies(store, clk, rnd, cfg.RoomRetention, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	retention time.Duration,
	logger *slog.Logger,
) *App {
	scoringService := scoring.New()
	wordsService := words.New(store, rnd)
	hub := ws.NewHub(logger)
	registry := room.NewRegistry(hub, store, wordsService, scoringService, clk, rnd, logger, retention)
	wsHandler := ws.NewHandler(hub, registry, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		ScoringService: scoringService,
		WordsService:   wordsService,
		RoomRegistry:   registry,
		Hub:            hub,
		WSHandler:      wsHandler,
	}
}
