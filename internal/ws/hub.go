package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/9910597111/BlindSketch-Game/internal/broadcast"
	"github.com/9910597111/BlindSketch-Game/internal/model"
)

// Hub tracks live websocket connections and routes events to them. It is the
// broadcast gateway for the whole server: delivery is best-effort, and a
// client whose send buffer is full loses the event rather than stalling the
// room it is in.
type Hub struct {
	mu    sync.RWMutex
	conns map[model.PlayerID]*connection
	rooms map[model.RoomID]map[model.PlayerID]*connection

	logger *slog.Logger
}

// Ensure Hub implements the gateway
var _ broadcast.Gateway = (*Hub)(nil)

// NewHub creates an empty hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		conns:  make(map[model.PlayerID]*connection),
		rooms:  make(map[model.RoomID]map[model.PlayerID]*connection),
		logger: logger,
	}
}

// Register attaches a player's connection to a room. A previous connection
// for the same player is closed and replaced.
func (h *Hub) Register(roomID model.RoomID, playerID model.PlayerID, conn *connection) {
	h.mu.Lock()
	if old, ok := h.conns[playerID]; ok {
		old.close()
	}
	h.conns[playerID] = conn
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[model.PlayerID]*connection)
	}
	h.rooms[roomID][playerID] = conn
	h.mu.Unlock()
}

// Unregister detaches a player's connection. It is a no-op if a newer
// connection has already replaced this one.
func (h *Hub) Unregister(roomID model.RoomID, playerID model.PlayerID, conn *connection) {
	h.mu.Lock()
	if current, ok := h.conns[playerID]; ok && current == conn {
		delete(h.conns, playerID)
		if room, ok := h.rooms[roomID]; ok {
			delete(room, playerID)
			if len(room) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	h.mu.Unlock()
}

// SendTo delivers an event to a single player's connection
func (h *Hub) SendTo(playerID model.PlayerID, event model.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	conn, ok := h.conns[playerID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if !conn.enqueue(payload) {
		h.logger.Warn("dropping event for slow client",
			slog.String("player_id", string(playerID)),
			slog.String("event_type", string(event.Type)),
		)
	}
}

// Broadcast delivers an event to every connected player in a room, except
// those listed in exclude.
func (h *Hub) Broadcast(roomID model.RoomID, event model.Event, exclude ...model.PlayerID) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", slog.String("error", err.Error()))
		return
	}

	excluded := make(map[model.PlayerID]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}

	h.mu.RLock()
	conns := make(map[model.PlayerID]*connection, len(h.rooms[roomID]))
	for id, conn := range h.rooms[roomID] {
		if !excluded[id] {
			conns[id] = conn
		}
	}
	h.mu.RUnlock()

	for id, conn := range conns {
		if !conn.enqueue(payload) {
			h.logger.Warn("dropping event for slow client",
				slog.String("player_id", string(id)),
				slog.String("event_type", string(event.Type)),
			)
		}
	}
}

// RoomConnections returns how many connections a room currently has
func (h *Hub) RoomConnections(roomID model.RoomID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
