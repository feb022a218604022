package room

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/9910597111/BlindSketch-Game/internal/broadcast"
	"github.com/9910597111/BlindSketch-Game/internal/dependencies/clock"
	"github.com/9910597111/BlindSketch-Game/internal/dependencies/random"
	"github.com/9910597111/BlindSketch-Game/internal/model"
	"github.com/9910597111/BlindSketch-Game/internal/services/scoring"
	"github.com/9910597111/BlindSketch-Game/internal/services/words"
	"github.com/9910597111/BlindSketch-Game/internal/storage"
)

// Room codes avoid ambiguous characters (0/O, 1/I/L)
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const roomCodeLength = 8

// DefaultRetention is how long a finished or drained room is kept before the
// sweep destroys it.
const DefaultRetention = 30 * time.Minute

// Registry owns the set of live rooms. Lookups and creation are serialized
// by the registry mutex; everything inside a room is the coordinator's
// business.
type Registry struct {
	mu    sync.RWMutex
	rooms map[model.RoomID]*Coordinator

	gateway   broadcast.Gateway
	store     storage.Storage
	words     *words.Service
	scoring   *scoring.Service
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
	retention time.Duration
}

// NewRegistry creates an empty room registry
func NewRegistry(
	gateway broadcast.Gateway,
	store storage.Storage,
	wordSource *words.Service,
	scoringService *scoring.Service,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
	retention time.Duration,
) *Registry {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Registry{
		rooms:     make(map[model.RoomID]*Coordinator),
		gateway:   gateway,
		store:     store,
		words:     wordSource,
		scoring:   scoringService,
		clock:     clk,
		random:    rnd,
		logger:    logger,
		retention: retention,
	}
}

// CreateRoom validates the config, mints an unused room code, and registers
// a coordinator for it. The returned creator ID is the caller's claim token:
// joining with it marks the player as the room's creator.
func (r *Registry) CreateRoom(ctx context.Context, config model.RoomConfig) (*Coordinator, model.PlayerID, error) {
	if err := config.Validate(); err != nil {
		return nil, "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var id model.RoomID
	for {
		id = model.RoomID(r.random.String(roomCodeLength, roomCodeAlphabet))
		if _, taken := r.rooms[id]; !taken {
			break
		}
	}

	now := r.clock.Now()
	creatorID := model.PlayerID(uuid.NewString())
	room := model.Room{
		ID:        id,
		CreatorID: creatorID,
		Config:    config,
		Status:    model.RoomStatusWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}

	coord := NewCoordinator(room, r.gateway, r.store, r.words, r.scoring, r.clock, r.logger)
	r.rooms[id] = coord

	if err := r.store.SaveRoom(ctx, &room); err != nil {
		r.logger.Warn("failed to mirror new room", slog.String("error", err.Error()))
	}

	r.logger.Info("room created",
		slog.String("room_id", string(id)),
		slog.Bool("private", config.IsPrivate),
	)

	return coord, creatorID, nil
}

// Get returns the coordinator for a room
func (r *Registry) Get(id model.RoomID) (*Coordinator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	coord, ok := r.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return coord, nil
}

// RandomPublicRoom picks a joinable public room at random. Only rooms that
// are still waiting and have spare capacity qualify.
func (r *Registry) RandomPublicRoom() (*Coordinator, error) {
	r.mu.RLock()
	var candidates []*Coordinator
	for _, coord := range r.rooms {
		room := coord.Room()
		if !room.Config.IsPrivate && coord.HasCapacity() {
			candidates = append(candidates, coord)
		}
	}
	r.mu.RUnlock()

	if len(candidates) == 0 {
		return nil, model.ErrRoomNotFound
	}
	return candidates[r.random.Intn(len(candidates))], nil
}

// Remove destroys a room: timers are cancelled and the stored mirror is
// cleaned up.
func (r *Registry) Remove(ctx context.Context, id model.RoomID) {
	r.mu.Lock()
	coord, ok := r.rooms[id]
	if ok {
		delete(r.rooms, id)
	}
	r.mu.Unlock()

	if !ok {
		return
	}

	coord.Close()

	for _, p := range coord.Players() {
		if err := r.store.DeletePlayer(ctx, p.ID); err != nil {
			r.logger.Warn("failed to delete player record", slog.String("error", err.Error()))
		}
	}
	if err := r.store.DeleteChatMessages(ctx, id); err != nil {
		r.logger.Warn("failed to delete chat history", slog.String("error", err.Error()))
	}
	if err := r.store.DeleteDrawing(ctx, id); err != nil {
		r.logger.Warn("failed to delete drawing state", slog.String("error", err.Error()))
	}
	if err := r.store.DeleteRoom(ctx, id); err != nil {
		r.logger.Warn("failed to delete room record", slog.String("error", err.Error()))
	}

	r.logger.Info("room removed", slog.String("room_id", string(id)))
}

// Count returns the number of live rooms
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Sweep destroys rooms past their retention window and returns how many
// were removed.
func (r *Registry) Sweep(ctx context.Context) int {
	now := r.clock.Now()

	r.mu.RLock()
	var expired []model.RoomID
	for id, coord := range r.rooms {
		if coord.ShouldRetire(now, r.retention) {
			expired = append(expired, id)
		}
	}
	r.mu.RUnlock()

	for _, id := range expired {
		r.Remove(ctx, id)
	}
	return len(expired)
}

// Run sweeps on the given interval until the context is cancelled
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(ctx); n > 0 {
				r.logger.Info("swept expired rooms", slog.Int("count", n))
			}
		}
	}
}
